package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryPublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus := NewInMemory(slog.Default())
	defer bus.Close()

	messages, err := bus.Subscribe(ctx, "judging.scores.submitted")
	require.NoError(t, err)

	type payload struct {
		AssignmentID string `json:"assignment_id"`
	}
	require.NoError(t, bus.Publish(ctx, "judging.scores.submitted", payload{AssignmentID: "a-1"}))

	select {
	case msg := <-messages:
		defer msg.Ack()
		assert.Equal(t, "judging.scores.submitted", msg.Metadata.Get(MetadataEventType))
		var got payload
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "a-1", got.AssignmentID)
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestNewWithoutURLFallsBackToInMemory(t *testing.T) {
	bus, err := New(Config{}, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, bus)
	assert.NoError(t, bus.Close())
}

func TestNkeyOptionRejectsBadSeed(t *testing.T) {
	_, err := nkeyOption("not-a-seed")
	assert.Error(t, err)
}

func TestPublishRejectsUnencodablePayload(t *testing.T) {
	bus := NewInMemory(slog.Default())
	defer bus.Close()

	err := bus.Publish(context.Background(), "judging.scores.submitted", func() {})
	assert.Error(t, err)
}

package authhandlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authjwt "github.com/Black-And-White-Club/hackathon-judging/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func actorEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.ActorFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(id.String()))
	})
}

func TestBearerAuth(t *testing.T) {
	provider := authjwt.NewProvider(testSecret)
	userID := uuid.New()

	valid, err := provider.GenerateToken(userID, time.Hour)
	require.NoError(t, err)
	expired, err := provider.GenerateToken(userID, -time.Hour)
	require.NoError(t, err)
	foreign, err := authjwt.NewProvider("another-secret-of-sufficient-size").GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, userID.String()},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, ""},
		{"empty token", "Bearer  ", http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, `{"error":"token has expired"}`},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized, `{"error":"invalid token"}`},
	}

	handler := BearerAuth(provider, slog.Default())(actorEcho())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/hackathons", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				if tt.wantStatus == http.StatusOK {
					assert.Equal(t, tt.wantBody, rec.Body.String())
				} else {
					assert.JSONEq(t, tt.wantBody, rec.Body.String())
				}
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1235"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1236"))
	// Buckets are per IP.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware([]string{"https://judging.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://judging.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://judging.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://judging.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

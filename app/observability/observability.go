package observability

import (
	"io"
	"log/slog"

	"github.com/Black-And-White-Club/hackathon-judging/app/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "hackathon-judging"

// Observability bundles the logger, tracer and metrics shared by all modules.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  metrics.OperationMetrics
	Registry *prometheus.Registry
}

// Config selects how observability is initialised.
type Config struct {
	Environment string
	LogLevel    slog.Level
	// MetricsEnabled registers prometheus collectors; otherwise metrics are discarded.
	MetricsEnabled bool
}

// New builds the observability bundle. The tracer comes from the global otel
// provider, which is a noop unless an SDK provider was installed.
func New(cfg Config, w io.Writer) (Observability, error) {
	logger := NewLogger(cfg.Environment, cfg.LogLevel, w)

	obs := Observability{
		Logger:  logger,
		Tracer:  otel.Tracer(serviceName),
		Metrics: metrics.NewNoop(),
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m, err := metrics.NewPrometheus(reg, "judging")
		if err != nil {
			return Observability{}, err
		}
		obs.Metrics = m
		obs.Registry = reg
	}

	return obs, nil
}

// NewLogger returns a text logger in development and a JSON logger elsewhere.
func NewLogger(environment string, level slog.Level, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("service", serviceName))
}

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace for all metrics
	namespace = "spacetraders"
	// Subsystem for bot metrics
	subsystem = "bot"
)

var (
	// Registry is the global Prometheus registry for all metrics.
	// Nil until InitRegistry is called; every Register is a no-op while nil.
	Registry *prometheus.Registry
)

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Collectors bundles every collector the bot records into
type Collectors struct {
	API       *APIMetricsCollector
	Commands  *CommandMetricsCollector
	Sequencer *SequencerMetricsCollector
}

// NewCollectors creates and registers all collectors.
// With metrics disabled the collectors still work but nothing is exported.
func NewCollectors() (*Collectors, error) {
	c := &Collectors{
		API:       NewAPIMetricsCollector(),
		Commands:  NewCommandMetricsCollector(),
		Sequencer: NewSequencerMetricsCollector(),
	}
	for _, r := range []interface{ Register() error }{c.API, c.Commands, c.Sequencer} {
		if err := r.Register(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Serve exposes the registry on addr at path until ctx is cancelled
func Serve(ctx context.Context, addr, path string) error {
	if Registry == nil {
		return errors.New("metrics registry not initialized")
	}
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

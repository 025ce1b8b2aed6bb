// Package metrics holds the Prometheus collectors for scans and reductions.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seedmap"

var (
	TasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_total",
		Help:      "The total number of range tasks finished, by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	ValuesScannedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "values_scanned_total",
		Help:      "The total number of seed values covered by finished range tasks.",
	}, []string{"strategy"})

	TaskDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Wall time of a single range task.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"strategy"})

	ReductionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reductions_total",
		Help:      "The total number of min-reductions, by outcome.",
	}, []string{"outcome"})
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Server exposes /metrics for the lifetime of a run.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Serve starts a /metrics endpoint on addr. Use ":0" to pick a free port.
func Serve(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() { _ = s.srv.Serve(ln) }()
	return s, nil
}

// Addr is the address the server is listening on.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Shutdown stops the server, waiting at most until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package brain

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/Echolyx123/advansells-frontend/internal/observability"
)

// LoadingHook receives the loading-indicator signal around each backend call.
// It fires with true on entry and false on every exit path.
type LoadingHook func(active bool)

// Gateway wraps an Adapter with the at-most-one-in-flight guard. A send
// attempted while another is pending fails immediately with
// ErrConcurrentRequest; nothing is queued.
type Gateway struct {
	adapter  Adapter
	loading  LoadingHook
	metrics  *observability.Metrics
	inFlight atomic.Bool
}

func NewGateway(adapter Adapter, loading LoadingHook, metrics *observability.Metrics) *Gateway {
	return &Gateway{
		adapter: adapter,
		loading: loading,
		metrics: metrics,
	}
}

// Busy reports whether a request is currently outstanding.
func (g *Gateway) Busy() bool {
	return g.inFlight.Load()
}

func (g *Gateway) Send(ctx context.Context, req FunnelRequest) (FunnelResponse, error) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return FunnelResponse{}, ErrConcurrentRequest
	}
	defer g.inFlight.Store(false)

	g.setLoading(true)
	defer g.setLoading(false)

	start := time.Now()
	resp, err := g.adapter.Send(ctx, req)
	g.observe(req.Action, start, err)
	return resp, err
}

func (g *Gateway) setLoading(active bool) {
	if g.loading != nil {
		g.loading(active)
	}
}

func (g *Gateway) observe(action FunnelAction, start time.Time, err error) {
	if g.metrics == nil {
		return
	}
	status := "ok"
	var backendErr *BackendError
	var transportErr *TransportError
	switch {
	case err == nil:
	case errors.As(err, &backendErr):
		status = "backend_error"
	case errors.As(err, &transportErr):
		status = "transport_error"
	default:
		status = "error"
	}
	g.metrics.BrainRequests.WithLabelValues(string(action), status).Inc()
	g.metrics.BrainLatency.Observe(float64(time.Since(start).Milliseconds()))
}

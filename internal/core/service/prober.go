package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// probeInterval is the background re-check cadence.
const probeInterval = 30 * time.Second

// Prober keeps a tri-state view of upstream connectivity. "Connecting" is
// the not-yet-heard-back state; any failed probe publishes "disconnected"
// with a message naming the failure. Subscribers read the last snapshot
// without blocking on a probe in flight.
type Prober struct {
	upstream ports.Upstream
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	snapshot ports.ProbeSnapshot
}

// NewProber builds a prober starting in the "connecting" state, matching a
// portal that has not heard from the backend yet.
func NewProber(up ports.Upstream, log zerolog.Logger) *Prober {
	return &Prober{
		upstream: up,
		log:      log,
		now:      time.Now,
		snapshot: ports.ProbeSnapshot{Status: ports.ProbeConnecting},
	}
}

// Check probes under the short health budget and publishes the result.
func (p *Prober) Check(ctx context.Context) ports.ProbeSnapshot {
	status, err := p.upstream.Health(ctx)
	return p.publish(status, err)
}

// CheckDiagnostic probes under the looser diagnostic budget. Used to tell a
// slow backend from a dead one after repeated short-budget timeouts.
func (p *Prober) CheckDiagnostic(ctx context.Context) ports.ProbeSnapshot {
	status, err := p.upstream.HealthDiagnostic(ctx)
	return p.publish(status, err)
}

// Status returns the last published snapshot.
func (p *Prober) Status() ports.ProbeSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Run probes immediately and then on the background cadence until ctx is
// done.
func (p *Prober) Run(ctx context.Context) {
	p.Check(ctx)
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

func (p *Prober) publish(status ports.HealthStatus, err error) ports.ProbeSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := ports.ProbeSnapshot{LastChecked: p.now()}
	var se *domain.UpstreamStatusError
	switch {
	case err == nil:
		next.Status = ports.ProbeConnected
		next.Message = status.Message
	case errors.Is(err, domain.ErrUpstreamTimeout):
		next.Status = ports.ProbeDisconnected
		next.Message = "Connection timeout"
		next.Retries = p.snapshot.Retries + 1
	case errors.As(err, &se):
		next.Status = ports.ProbeDisconnected
		next.Message = fmt.Sprintf("Unexpected status: %d", se.Code)
		next.Retries = p.snapshot.Retries + 1
	default:
		next.Status = ports.ProbeDisconnected
		next.Message = "Connection failed"
		next.Retries = p.snapshot.Retries + 1
	}

	if next.Status != p.snapshot.Status {
		p.log.Info().
			Str("from", string(p.snapshot.Status)).
			Str("to", string(next.Status)).
			Int("retries", next.Retries).
			Msg("upstream connectivity changed")
	}
	p.snapshot = next
	return next
}

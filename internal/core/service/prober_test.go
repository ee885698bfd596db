package service

import (
	"context"
	"testing"
	"time"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

func TestProberStartsConnecting(t *testing.T) {
	p := NewProber(&stubUpstream{t: t}, testLogger())
	if got := p.Status().Status; got != ports.ProbeConnecting {
		t.Errorf("initial status = %q", got)
	}
}

func TestProberClassifiesOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		want    ports.ProbeStatus
		wantMsg string
	}{
		{"healthy", nil, ports.ProbeConnected, "healthy"},
		{"slow", domain.ErrUpstreamTimeout, ports.ProbeDisconnected, "Connection timeout"},
		{"rejected", &domain.UpstreamStatusError{Code: 503}, ports.ProbeDisconnected, "Unexpected status: 503"},
		{"refused", domain.ErrUpstreamUnavailable, ports.ProbeDisconnected, "Connection failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			up := &stubUpstream{t: t, health: func(context.Context) (ports.HealthStatus, error) {
				if tc.err != nil {
					return ports.HealthStatus{}, tc.err
				}
				return ports.HealthStatus{Status: "ok", Message: "healthy"}, nil
			}}
			p := NewProber(up, testLogger())
			snap := p.Check(context.Background())
			if snap.Status != tc.want {
				t.Errorf("status = %q, want %q", snap.Status, tc.want)
			}
			if snap.Message != tc.wantMsg {
				t.Errorf("message = %q, want %q", snap.Message, tc.wantMsg)
			}
			if p.Status().Status != tc.want {
				t.Errorf("published status = %q", p.Status().Status)
			}
		})
	}
}

func TestProberCountsRetriesAcrossFailures(t *testing.T) {
	calls := 0
	up := &stubUpstream{t: t, health: func(context.Context) (ports.HealthStatus, error) {
		calls++
		if calls <= 2 {
			return ports.HealthStatus{}, domain.ErrUpstreamUnavailable
		}
		return ports.HealthStatus{Status: "ok"}, nil
	}}
	p := NewProber(up, testLogger())

	p.Check(context.Background())
	snap := p.Check(context.Background())
	if snap.Retries != 2 {
		t.Errorf("retries = %d", snap.Retries)
	}

	snap = p.Check(context.Background())
	if snap.Status != ports.ProbeConnected || snap.Retries != 0 {
		t.Errorf("recovered snapshot = %+v", snap)
	}
}

func TestProberStampsCheckTime(t *testing.T) {
	up := &stubUpstream{t: t, health: func(context.Context) (ports.HealthStatus, error) {
		return ports.HealthStatus{Status: "ok"}, nil
	}}
	p := NewProber(up, testLogger())
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	snap := p.Check(context.Background())
	if !snap.LastChecked.Equal(fixed) {
		t.Errorf("lastChecked = %v", snap.LastChecked)
	}
}

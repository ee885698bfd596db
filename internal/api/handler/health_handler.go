package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/api/metrics"
	"github.com/campusconnect/portal/internal/core/ports"
)

type HealthHandler struct {
	prober ports.Prober
}

func NewHealthHandler(prober ports.Prober) *HealthHandler {
	return &HealthHandler{prober: prober}
}

// Liveness reports that the gateway process itself is up. Always 200.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type upstreamHealthResponse struct {
	Status      ports.ProbeStatus `json:"status"`
	Message     string            `json:"message,omitempty"`
	LastChecked time.Time         `json:"lastChecked"`
	Retries     int               `json:"retries,omitempty"`
}

// Upstream returns the prober's last snapshot, or re-probes on demand with
// ?check=true (?check=diagnostic uses the looser budget).
func (h *HealthHandler) Upstream(c echo.Context) error {
	var snap ports.ProbeSnapshot
	switch c.QueryParam("check") {
	case "true":
		snap = h.prober.Check(c.Request().Context())
	case "diagnostic":
		snap = h.prober.CheckDiagnostic(c.Request().Context())
	default:
		snap = h.prober.Status()
	}

	for _, state := range []ports.ProbeStatus{ports.ProbeConnected, ports.ProbeConnecting, ports.ProbeDisconnected} {
		v := 0.0
		if snap.Status == state {
			v = 1.0
		}
		metrics.UpstreamConnectivity.WithLabelValues(string(state)).Set(v)
	}

	return c.JSON(http.StatusOK, upstreamHealthResponse{
		Status:      snap.Status,
		Message:     snap.Message,
		LastChecked: snap.LastChecked,
		Retries:     snap.Retries,
	})
}

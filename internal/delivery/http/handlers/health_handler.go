package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/http/dto/response"
)

// HealthCheck is one dependency probe. A failing critical check turns the
// whole service unhealthy; the rest only show up as degraded.
type HealthCheck struct {
	Name     string
	Critical bool
	Ping     func(ctx context.Context) error
}

type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthHandler(timeout time.Duration, checks ...HealthCheck) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{checks: checks, timeout: timeout}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body := response.HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			body.Checks[check.Name] = err.Error()
			if check.Critical {
				body.Status = "unavailable"
				status = http.StatusServiceUnavailable
			} else if body.Status == "ok" {
				body.Status = "degraded"
			}
			continue
		}
		body.Checks[check.Name] = "ok"
	}

	response.WriteJSON(w, status, body)
}

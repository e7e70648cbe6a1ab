package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

const healthCheckTimeout = 5 * time.Second

// BackendPinger probes every store the service is configured to use.
type BackendPinger interface {
	PingBackends(ctx context.Context) map[string]error
}

type HealthController struct {
	pinger BackendPinger
}

func NewHealthController(pinger BackendPinger) *HealthController {
	return &HealthController{pinger: pinger}
}

// GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	results := c.pinger.PingBackends(ctx)
	backends := make(map[string]string, len(results))
	var firstErr error
	for name, err := range results {
		if err != nil {
			utils.Logger.WithError(err).Errorf("%s backend unreachable", name)
			backends[name] = err.Error()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		backends[name] = "OK"
	}

	if firstErr != nil {
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, "Data store unreachable", backends, firstErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK", Backends: backends})
}

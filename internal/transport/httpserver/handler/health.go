package handler

import (
	"fmt"
	"net/http"
	"time"
)

const (
	serviceName    = "qr-manager-backend"
	serviceVersion = "2.0"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Health answers the uptime monitor that keeps the free-tier host awake.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Version:   serviceVersion,
		Timestamp: time.Now().UTC(),
		Uptime:    fmt.Sprintf("%d seconds", int(time.Since(h.started).Seconds())),
	})
}

type rootResponse struct {
	Service   string   `json:"service"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Service: serviceName + " v" + serviceVersion,
		Status:  "online",
		Endpoints: []string{
			"GET /health",
			"POST /api/register-code",
			"POST /api/validate-qr",
			"POST /api/register-worker",
			"GET /api/get-history",
			"GET /api/counters",
		},
	})
}

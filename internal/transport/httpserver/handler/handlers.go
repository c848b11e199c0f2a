package handler

import (
	"time"

	registrydomain "qr-manager-go/internal/domain/registry"
	reportsdomain "qr-manager-go/internal/domain/reports"
	"qr-manager-go/pkg/logger"
)

type Handlers struct {
	Registry *registrydomain.Service
	Reports  *reportsdomain.Service
	log      logger.Logger
	started  time.Time
}

func New(registry *registrydomain.Service, reports *reportsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Registry: registry,
		Reports:  reports,
		log:      log,
		started:  time.Now(),
	}
}

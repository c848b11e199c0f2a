package app

import (
	"fmt"
	"net/http"

	"qr-manager-go/internal/config"
	"qr-manager-go/internal/db"
	registrydomain "qr-manager-go/internal/domain/registry"
	reportsdomain "qr-manager-go/internal/domain/reports"
	"qr-manager-go/internal/repository/inmemory"
	"qr-manager-go/internal/repository/photostore"
	storerepo "qr-manager-go/internal/repository/store"
	"qr-manager-go/internal/transport/httpserver"
	"qr-manager-go/internal/transport/httpserver/handler"
	"qr-manager-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	var (
		partitions registrydomain.PartitionStore
		photos     registrydomain.PhotoStore
		dbConn     *gorm.DB
	)

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		log.Info("app: using in-memory store backend")
		partitions = inmemory.NewStore()
		photos = inmemory.NewPhotoStore()
	case config.StoreBackendPostgres:
		dbConn, err = db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(dbConn); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		partitions = storerepo.NewPostgres(dbConn)
		photos, err = photostore.NewLocal(cfg.Photos.Dir, cfg.Photos.BaseURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	registryService := registrydomain.NewService(partitions, photos, registrydomain.Config{
		CodeLength:      cfg.Registry.CodeLength,
		CodeTTL:         cfg.Registry.CodeTTL,
		PartitionPrefix: cfg.Registry.PartitionPrefix,
		TimeZone:        cfg.Registry.TimeZone,
	})
	reportsService := reportsdomain.NewService(partitions, reportsdomain.Config{
		HistoryLimit:     cfg.Reports.HistoryLimit,
		PartitionPrefix:  cfg.Registry.PartitionPrefix,
		CountersCacheTTL: cfg.Reports.CountersCacheTTL,
	})

	handlers := handler.New(registryService, reportsService, log)
	router := httpserver.NewRouter(handlers)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package main

import (
	"context"
	"database/sql"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"MarketStore/internal/config"
	"MarketStore/internal/market"
	"MarketStore/pkg/kit"
)

const service = "marketd"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatal("store init failed", zap.Error(err))
	}

	svc := market.NewService(store, market.IDStrategy(cfg.IDStrategy), log)
	srv := market.NewServer(svc, log)

	h := market.NewHandler(srv, market.HTTPDeps{
		Log:              log,
		Service:          service,
		Registry:         prometheus.NewRegistry(),
		MetricsEnabled:   cfg.Metrics.Enabled,
		MetricsToken:     cfg.Metrics.Token,
		WriteLimitPerMin: cfg.WriteLimitPerMin,
	})

	timeouts := kit.ServerTimeouts{
		ReadHeader: cfg.HTTP.ReadHeaderTimeout,
		Write:      cfg.HTTP.WriteTimeout,
		Idle:       cfg.HTTP.IdleTimeout,
	}

	if err := kit.RunHTTPServer(":"+cfg.HTTP.Port, h, timeouts, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newStore(cfg *config.Config, log *zap.Logger) (market.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := sql.Open("pgx", cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		log.Info("using postgres store")
		return market.NewPostgresStore(db), nil

	case "memory":
		log.Info("using in-memory store")
		return market.NewMemStore(), nil

	default:
		fs := market.NewFileStore(cfg.Storage.DataDir)
		if err := fs.EnsureDefaults(context.Background()); err != nil {
			return nil, err
		}
		log.Info("using file store", zap.String("dir", cfg.Storage.DataDir))
		return fs, nil
	}
}

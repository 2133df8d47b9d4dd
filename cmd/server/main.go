package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partlane/partlane/modules"
	"github.com/partlane/partlane/pkg/application"
	"github.com/partlane/partlane/pkg/configuration"
	"github.com/partlane/partlane/pkg/eventbus"
	"github.com/partlane/partlane/pkg/metrics"
	"github.com/partlane/partlane/pkg/middleware"
	"github.com/partlane/partlane/pkg/server"
)

func main() {
	conf := configuration.Use()
	log := conf.Logger()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		log.WithError(err).Error("failed to create database pool")
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Error("failed to connect to database")
		os.Exit(1)
	}

	app := application.New(pool, eventbus.NewEventPublisher(log))
	app.RegisterMiddleware(
		middleware.RequestLogger(log),
		middleware.ProvidePool(pool),
		middleware.WithTransaction(),
	)
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.WithError(err).Error("failed to load modules")
		os.Exit(1)
	}
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	log.WithField("address", conf.SocketAddress()).Info("listening")
	if err := server.NewHTTPServer(app).Start(conf.SocketAddress()); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

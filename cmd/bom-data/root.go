package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/partlane/partlane/pkg/composables"
	"github.com/partlane/partlane/pkg/configuration"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bom-data",
		Short:         "Import and export bills of materials from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newImportCmd(), newExportCmd())
	return cmd
}

// connect opens the pool and binds it into the context the way the HTTP
// middleware does, so repositories behave identically in both entry points.
func connect(ctx context.Context) (context.Context, *pgxpool.Pool, error) {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	ctx = composables.WithPool(ctx, pool)
	ctx = composables.WithLogger(ctx, conf.Logger().WithField("command", "bom-data"))
	return ctx, pool, nil
}

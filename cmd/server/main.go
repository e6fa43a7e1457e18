package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/vendra-hq/vendra-sdk/migrations"
	"github.com/vendra-hq/vendra-sdk/modules"
	"github.com/vendra-hq/vendra-sdk/pkg/application"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/configuration"
	"github.com/vendra-hq/vendra-sdk/pkg/eventbus"
	"github.com/vendra-hq/vendra-sdk/pkg/metrics"
	"github.com/vendra-hq/vendra-sdk/pkg/middleware"
	"github.com/vendra-hq/vendra-sdk/pkg/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	root := &cobra.Command{
		Use:          "vendra",
		Short:        "Multi-tenant commerce back-office server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newApplication(ctx context.Context, conf *configuration.Configuration) (application.Application, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(conf.Logger()),
		Logger:   conf.Logger(),
	})
	if err := modules.Load(app); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return app, pool, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			app, pool, err := newApplication(cmd.Context(), conf)
			if err != nil {
				return err
			}
			defer pool.Close()

			app.RegisterMiddleware(
				middleware.WithPool(pool),
				middleware.RequestLogger(logger),
				middleware.WithTenant(),
				middleware.WithTransaction(),
			)
			if conf.Prometheus.Enabled {
				app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
			}

			srv := server.NewHTTPServer(app, conf.Origin)

			errCh := make(chan error, 1)
			go func() {
				logger.WithField("address", conf.SocketAddress).Info("starting server")
				errCh <- srv.Start(conf.SocketAddress)
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				logger.WithField("signal", sig.String()).Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()

			db, err := sql.Open("pgx", conf.Database.ConnectionString())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			goose.SetBaseFS(migrations.FS)
			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}

			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}
			switch direction {
			case "down":
				return goose.DownContext(cmd.Context(), db, ".")
			default:
				return goose.UpContext(cmd.Context(), db, ".")
			}
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with development data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()

			app, pool, err := newApplication(cmd.Context(), conf)
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := composables.WithPool(cmd.Context(), pool)
			return composables.InTx(ctx, func(txCtx context.Context) error {
				return app.Seeder().Seed(txCtx, app)
			})
		},
	}
}

package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cybedefend/cdscan/pkg/controller/server"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		cfg  scanConfig
		addr string
		dir  string
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("CDSCAN_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "Workspace scanned when a request does not name one",
			Value:       ".",
			Sources:     cli.EnvVars("CDSCAN_DIR"),
			Destination: &dir,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve the scan state and trigger scans over HTTP",
		Flags:   append(serveFlags, cfg.flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			root, err := filepath.Abs(dir)
			if err != nil {
				return goerr.Wrap(err, "failed to resolve directory", goerr.V("dir", dir))
			}

			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Dir", root),
				slog.Any("CybeDefend", &cfg.cybeDefend),
				slog.Any("Scan", &cfg.scan),
				slog.Any("BigQuery", &cfg.bigQuery),
				slog.Any("Firestore", &cfg.firestore),
				slog.Any("Archive", &cfg.archive),
				slog.Any("Sentry", &cfg.sentry),
			)

			if err := cfg.sentry.Configure(ctx); err != nil {
				return err
			}
			defer cfg.sentry.Flush()

			uc, err := cfg.newUseCase(ctx,
				usecase.WithProgress(func(ctx context.Context, msg string) {
					logging.From(ctx).Info(msg)
				}),
			)
			if err != nil {
				return err
			}

			unsubscribe := uc.Store().Subscribe(func(s model.Snapshot) {
				logging.Default().Debug("scan state changed",
					slog.Bool("loading", s.IsLoading),
					slog.String("state", s.LastScanState.String()),
					slog.Int("total", s.TotalVulnerabilities),
					slog.String("error", s.Error),
				)
			})
			defer unsubscribe()

			s := server.New(uc,
				server.WithProjectID(cfg.cybeDefend.ProjectID()),
				server.WithWorkspaceRoot(root),
			)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)
				if uc.CancelScan() {
					logging.Default().Info("active scan cancelled")
				}

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}

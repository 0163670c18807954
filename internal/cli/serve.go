package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "tablefinder/internal/http"
	"tablefinder/internal/http/handlers"
	applog "tablefinder/internal/log"
	"tablefinder/internal/repos"
)

func newServeCmd(sf *storeFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, sf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			w, err := applog.Init(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			store, err := repos.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBSeed)
			if err != nil {
				return err
			}
			defer store.Close()

			app := api.NewApp(cfg, handlers.NewDeps(store, cfg), w)

			errCh := make(chan error, 1)
			go func() { errCh <- app.Listen(cfg.Addr()) }()
			applog.Info(nil, "server.start", map[string]any{"addr": cfg.Addr(), "driver": cfg.DBDriver})

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			applog.Info(nil, "server.stop", nil)
			return app.ShutdownWithTimeout(5 * time.Second)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (env PORT)")
	return cmd
}

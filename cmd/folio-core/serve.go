package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/folio-labs/folio-core/internal/adapters/driving/http"
	"github.com/folio-labs/folio-core/internal/core/services"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load content and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("folio-core starting", "version", version)

			a, err := buildApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.content.Load(ctx)
			if err != nil {
				return err
			}
			logger.Info("content loaded", "source", result.Source, "attempts", len(result.Attempts))

			editor := services.NewEditorService(services.EditorConfig{
				Content:          a.content,
				Logger:           logger,
				AutoSaveEnabled:  cfg.Editor.AutoSaveEnabled,
				AutoSaveInterval: cfg.Editor.AutoSaveInterval,
			})
			defer editor.Stop()

			var cache http.Pinger
			if a.cache != nil {
				cache = a.cache
			}

			server := http.NewServer(http.Config{
				Host:           cfg.Server.Host,
				Port:           cfg.Server.Port,
				Version:        version,
				AllowedOrigins: cfg.Server.AllowedOrigins,
			}, a.content, editor, cache)

			return server.Start(ctx)
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"ArticleTagger/internal/app"
	"ArticleTagger/internal/config"
	"ArticleTagger/internal/logging"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "articletagger",
		Short:        "Fetch articles as plain text and tag them with an LLM",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $ARTICLE_TAGGER_CONFIG)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(configPath)
			logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

			application, err := app.New(cfg, logger)
			if err != nil {
				logger.Error("application init failed", "error", err)
				return err
			}
			if err := application.Serve(cmd.Context()); err != nil {
				logger.Error("application stopped", "error", err)
				return err
			}
			return nil
		},
	}

	tui := &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal client",
		Long: `Launch the terminal client for a running server.

Controls:
  Enter   - Fetch the article
  Ctrl+T  - Generate tags for the fetched article
  Esc     - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunTUI(cmd.Context(), config.Load(configPath))
		},
	}

	root.AddCommand(serve, tui)
	return root
}

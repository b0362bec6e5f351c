package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mstepanov/contact-backend/internal/app"
	"github.com/mstepanov/contact-backend/internal/config"
	"github.com/mstepanov/contact-backend/internal/log"
)

func main() {
	var configPath string
	var addr string

	root := &cobra.Command{
		Use:           "contact-server",
		Short:         "Contact form backend: validates, stores and forwards submissions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// A .env file is optional; env-only deployments skip it.
			_ = godotenv.Load()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger := log.New(cfg.LogLevel, cfg.Env)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, &cfg, logger)
			if err != nil {
				return err
			}

			logger.Info().Str("addr", cfg.Addr).Str("env", cfg.Env).Msg("starting contact server")
			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to config file (default: ./config.yaml if present)")
	root.Flags().StringVar(&addr, "addr", "", "HTTP listen address, overrides config")

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "contact-server: %v\n", err)
		os.Exit(1)
	}
}

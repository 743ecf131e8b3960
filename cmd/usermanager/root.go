package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"user-admin-api/config"
	"user-admin-api/internal"
	"user-admin-api/internal/infrastructure/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "usermanager",
	Short:         "User management and authentication API",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// bootstrap loads the configuration and builds the logger every command uses.
func bootstrap() (config.Config, *zap.Logger, error) {
	cfg, err := internal.LoadConfig(envFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, lg, nil
}

func newApp(ctx context.Context) (*internal.App, error) {
	cfg, lg, err := bootstrap()
	if err != nil {
		return nil, err
	}
	app, err := internal.NewApp(ctx, cfg, lg)
	if err != nil {
		lg.Error("init app failed", zap.Error(err))
		_ = lg.Sync()
		return nil, err
	}
	return app, nil
}

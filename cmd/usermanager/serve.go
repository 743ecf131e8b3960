package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. Usage:

	usermanager serve
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if cfg := app.Config(); cfg.Seed.SampleUsers {
			if err = app.SeedSampleUsers(cmd.Context()); err != nil {
				app.Logger().Error("seeding sample users failed", zap.Error(err))
				return err
			}
		}

		app.InitControllers()

		if err = app.Run(cmd.Context()); err != nil {
			app.Logger().Error("usermanager stopped with error", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

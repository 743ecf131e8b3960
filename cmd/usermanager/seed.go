package main

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample users into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		return app.SeedSampleUsers(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

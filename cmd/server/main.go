package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Swim Coach API
// @version 1.0
// @description API for generating, storing and scheduling swimming training plans.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "swimcoach",
		Short:         "Swimming training plan generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yaml and .env")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newGenerateCmd(&configPath))
	return rootCmd
}

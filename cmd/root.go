package cmd

import (
	"fmt"
	"os"

	"storefront/config"
	"storefront/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Site SEO and product listing backend",
	Long: `storefront serves the site SEO record and the product listings over HTTP,
and ships maintenance commands to back up, restore and import that data.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// With no subcommand the binary serves, like `storefront serve`.
	rootCmd.RunE = runServe
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(importCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	envErr := config.LoadEnvFile(envFile)

	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Init(c.LogLevel)
	if envErr != nil {
		logger.Sugar.Infof("No %s file found, using environment variables from OS", envFile)
	}
	cfg = c
	return nil
}

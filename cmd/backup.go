package cmd

import (
	"fmt"

	"storefront/internal/backup"
	"storefront/pkg/logger"
	"storefront/store"

	"github.com/spf13/cobra"
)

var (
	outputDir        string
	backupCollection string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup the products and SEO collections",
	Long:  "Backup the products and SEO collections to JSON-lines files",
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().StringVarP(&outputDir, "output", "o", "./backups", "Output directory for backup files")
	backupCmd.Flags().StringVarP(&backupCollection, "collection", "c", "", "Specific collection to backup: products or seos (default all)")
}

func runBackup(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	backupService := backup.NewService(st.Products, st.SEO)

	if backupCollection != "" {
		logger.Sugar.Infof("Starting backup of collection '%s'...", backupCollection)
		file, err := backupService.BackupCollection(cmd.Context(), backupCollection, outputDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), file)
		return nil
	}

	files, err := backupService.BackupAll(cmd.Context(), outputDir)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	logger.Sugar.Infof("Backup completed successfully. Created %d backup files", len(files))
	for _, file := range files {
		fmt.Fprintln(cmd.OutOrStdout(), file)
	}
	return nil
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"storefront/internal/backup"
	"storefront/pkg/logger"
	"storefront/store"

	"github.com/spf13/cobra"
)

var (
	inputFile         string
	restoreCollection string
	dropExisting      bool
	skipConfirmation  bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a collection from a backup file",
	RunE:  runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input backup file to restore (required)")
	restoreCmd.Flags().StringVarP(&restoreCollection, "collection", "c", "", "Target collection (defaults to the one in the backup file name)")
	restoreCmd.Flags().BoolVar(&dropExisting, "drop", false, "Delete existing products before restoring")
	restoreCmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompts")

	restoreCmd.MarkFlagRequired("input")
}

func runRestore(cmd *cobra.Command, args []string) error {
	if err := backup.ValidateBackupFile(inputFile); err != nil {
		return fmt.Errorf("backup file validation failed: %w", err)
	}

	target := restoreCollection
	if target == "" {
		name, err := backup.CollectionFromFilename(inputFile)
		if err != nil {
			return err
		}
		target = name
	}

	if dropExisting && !skipConfirmation {
		msg := fmt.Sprintf("This will delete every document in '%s' before restoring %s. Continue?", target, inputFile)
		if !confirmAction(cmd.InOrStdin(), cmd.OutOrStdout(), msg) {
			logger.Sugar.Info("Restore cancelled")
			return nil
		}
	}

	st, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Sugar.Infof("Starting restore of collection '%s' from %s...", target, inputFile)
	n, err := backup.NewService(st.Products, st.SEO).RestoreFile(cmd.Context(), inputFile, target, dropExisting)
	if err != nil {
		return err
	}
	logger.Sugar.Infof("Restore completed successfully: %d documents", n)
	return nil
}

func confirmAction(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s (y/N): ", message)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

package cmd

import (
	"fmt"

	"storefront/internal/csv"
	"storefront/pkg/logger"
	"storefront/store"

	"github.com/spf13/cobra"
)

var csvFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import products from a CSV file",
	Long:  "Import products from a CSV file whose header row names the product fields",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&csvFile, "csv", "", "CSV file to import (required)")

	importCmd.MarkFlagRequired("csv")
}

func runImport(cmd *cobra.Command, args []string) error {
	products, err := csv.NewParser(csvFile).ParseProducts()
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}
	logger.Sugar.Infof("Parsed %d products from %s", len(products), csvFile)

	st, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := csv.Import(cmd.Context(), st.Products, products)
	if err != nil {
		return fmt.Errorf("import stopped after %d products: %w", n, err)
	}
	logger.Sugar.Infof("Imported %d products", n)
	return nil
}

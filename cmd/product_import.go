package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	productService "shopzone.GO/service/product"
)

var (
	importFile   string
	importBatch  int
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import products from a CSV file (upsert by name)",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()

		db, err := openDB()
		if err != nil {
			return err
		}

		res, err := productService.ImportProducts(cmd.Context(), db, f, productService.ImportOptions{
			BatchSize: importBatch,
			DryRun:    importDryRun,
		})
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  [warn] %s\n", w)
		}
		fmt.Fprintf(out, `
=== Import Report ===
CSV rows:       %d
Created:        %d
Updated:        %d
Skipped:        %d
Mode:           %s
Total time:     %s
  - Processing: %s
  - DB upsert:  %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
			map[bool]string{true: "dry run", false: "write"}[importDryRun],
			res.TotalTime.Round(time.Millisecond),
			res.ProcessTime.Round(time.Millisecond),
			res.DBTime.Round(time.Millisecond))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 500, "Batch size for DB operations")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate without writing")
	rootCmd.AddCommand(importCmd)
}

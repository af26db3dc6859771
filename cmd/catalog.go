package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	productRepo "shopzone.GO/model/repository/product"
	"shopzone.GO/service/catalog"
)

var seedReindex bool

var catalogSeedCmd = &cobra.Command{
	Use:   "catalog:seed",
	Short: "Load the demo products and components into empty tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		res, err := catalog.Seed(cmd.Context(), db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products, %d components\n", res.Products, res.Components)

		if !seedReindex {
			return nil
		}
		search, err := catalog.NewSearchServiceFromEnv()
		if err != nil {
			return err
		}
		if search == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "ELASTICSEARCH_HOST not set, skipping reindex")
			return nil
		}
		products, err := productRepo.NewProductRepository(db).List(cmd.Context())
		if err != nil {
			return err
		}
		if err := search.IndexProducts(cmd.Context(), products); err != nil {
			return fmt.Errorf("index products: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d products\n", len(products))
		return nil
	},
}

var dbMigrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openDB(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
		return nil
	},
}

func init() {
	catalogSeedCmd.Flags().BoolVar(&seedReindex, "reindex", true, "Push all products to Elasticsearch when configured")
	rootCmd.AddCommand(catalogSeedCmd, dbMigrateCmd)
}

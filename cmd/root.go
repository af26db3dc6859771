package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"shopzone.GO/config"
)

var rootCmd = &cobra.Command{
	Use:   "shopzone",
	Short: "ShopZone storefront maintenance commands",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "help" {
			figure.NewFigure(config.App().AppName, "small", true).Print()
		}
	},
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects and migrates; commands fail fast when the db is down.
func openDB() (*gorm.DB, error) {
	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := config.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

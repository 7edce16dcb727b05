package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/pipeline"
	"github.com/papapumpkin/matn/internal/ui"
)

const defaultIndexDB = "books.db"

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load the resolved catalog into a SQLite database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if db, _ := cmd.Flags().GetString("db"); db != "" {
			cfg.IndexDB = db
		}
		return runIndex(cmd.Context(), cfg, ui.New())
	},
}

func runIndex(ctx context.Context, cfg config.Config, printer *ui.Printer) error {
	if cfg.IndexDB == "" {
		cfg.IndexDB = defaultIndexDB
	}
	path := cfg.IndexPath()
	meta, err := pipeline.New(cfg, log()).Index(ctx, path)
	if err != nil {
		return err
	}
	printer.IndexWritten(path, meta)
	return nil
}

func init() {
	indexCmd.Flags().String("db", "", "database file, relative to the output directory (default books.db)")
	rootCmd.AddCommand(indexCmd)
}

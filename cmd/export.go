package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/pipeline"
	"github.com/papapumpkin/matn/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run every stage: build, resolve, map and (when index_db is set) index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if dangling, _ := cmd.Flags().GetBool("allow-dangling"); dangling {
			cfg.AllowDangling = true
		}
		if db, _ := cmd.Flags().GetString("db"); db != "" {
			cfg.IndexDB = db
		}
		return runExport(cmd.Context(), cfg, ui.New())
	},
}

func runExport(ctx context.Context, cfg config.Config, printer *ui.Printer) error {
	rep, err := pipeline.New(cfg, log()).Export(ctx)
	if err != nil {
		return err
	}
	printReport(printer, rep)
	return nil
}

func printReport(printer *ui.Printer, rep *pipeline.Report) {
	printer.Anomalies(rep.Anomalies)
	for _, a := range rep.Artifacts {
		printer.ArtifactWritten(a.Path, a.Records, a.Size)
	}
	if rep.Index != nil {
		printer.IndexWritten(rep.IndexPath, *rep.Index)
	}
}

func init() {
	exportCmd.Flags().Bool("allow-dangling", false, "write unresolvable references as null instead of failing")
	exportCmd.Flags().String("db", "", "also fill this SQLite index, relative to the output directory")
	rootCmd.AddCommand(exportCmd)
}

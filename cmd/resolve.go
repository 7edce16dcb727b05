package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/pipeline"
	"github.com/papapumpkin/matn/internal/ui"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Turn reference indices into file names (temp2_filename.json)",
	Long: "Reads the index-form catalog and writes the same records with every\n" +
		"reference replaced by the linked book's file name. An index that names no\n" +
		"book fails the run unless --allow-dangling is set.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if dangling, _ := cmd.Flags().GetBool("allow-dangling"); dangling {
			cfg.AllowDangling = true
		}
		return runResolve(cfg, ui.New())
	},
}

func runResolve(cfg config.Config, printer *ui.Printer) error {
	a, anoms, err := pipeline.New(cfg, log()).Resolve()
	if err != nil {
		return err
	}
	printer.Anomalies(anoms)
	printer.ArtifactWritten(a.Path, a.Records, a.Size)
	return nil
}

func init() {
	resolveCmd.Flags().Bool("allow-dangling", false, "write unresolvable references as null instead of failing")
	rootCmd.AddCommand(resolveCmd)
}

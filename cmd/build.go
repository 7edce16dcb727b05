package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/pipeline"
	"github.com/papapumpkin/matn/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the index-form catalog (temp1_indices.json)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runBuild(cfg, ui.New())
	},
}

func runBuild(cfg config.Config, printer *ui.Printer) error {
	a, err := pipeline.New(cfg, log()).Build()
	if err != nil {
		return err
	}
	printer.ArtifactWritten(a.Path, a.Records, a.Size)
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/pipeline"
	"github.com/papapumpkin/matn/internal/ui"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Write the romanized book list and the jump map (books.json, tpo_map.json)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if noTitle, _ := cmd.Flags().GetBool("no-title"); noTitle {
			cfg.IncludeNavTitle = false
		}
		return runMap(cfg, ui.New())
	},
}

func runMap(cfg config.Config, printer *ui.Printer) error {
	as, err := pipeline.New(cfg, log()).Map()
	if err != nil {
		return err
	}
	for _, a := range as {
		printer.ArtifactWritten(a.Path, a.Records, a.Size)
	}
	return nil
}

func init() {
	mapCmd.Flags().Bool("no-title", false, "omit the romanized title from jump map entries")
	rootCmd.AddCommand(mapCmd)
}

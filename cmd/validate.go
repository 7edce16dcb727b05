package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/matn/internal/catalog"
	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/pipeline"
	"github.com/papapumpkin/matn/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog table without writing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runValidate(cfg, ui.New())
	},
}

func runValidate(cfg config.Config, printer *ui.Printer) error {
	source := cfg.CatalogFile
	if source == "" {
		source = "(embedded)"
	}

	c, err := pipeline.New(cfg, log()).Catalog()
	var verrs *catalog.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		printer.ValidateResult(source, 0, verrs.Errs)
		return fmt.Errorf("validation failed with %d error(s)", len(verrs.Errs))
	case err != nil:
		return err
	}

	printer.ValidateResult(source, c.Len(), nil)
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

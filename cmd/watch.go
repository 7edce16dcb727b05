package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/ui"
	"github.com/papapumpkin/matn/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-export whenever the catalog table changes",
	Long: "Runs export once, then again after every edit to the file named by\n" +
		"--catalog. Failed runs are reported and watching continues.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		printer := ui.New()
		ctx, cancel := setupSignalContext(printer)
		defer cancel()
		return runWatch(ctx, cfg, printer)
	},
}

func runWatch(ctx context.Context, cfg config.Config, printer *ui.Printer) error {
	if cfg.CatalogFile == "" {
		return errors.New("watch needs a catalog file (--catalog or catalog_file)")
	}

	w, err := watch.New(cfg.CatalogFile, cfg.WatchDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	exportOnce := func() {
		if err := runExport(ctx, cfg, printer); err != nil {
			log().Error("export failed", zap.String("catalog", cfg.CatalogFile), zap.Error(err))
			printer.Error(err.Error())
		}
	}

	exportOnce()
	printer.Info(fmt.Sprintf("watching %s", w.File))

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-w.Changes:
			if !ok {
				return nil
			}
			log().Debug("catalog changed", zap.String("file", c.File), zap.Stringer("kind", c.Kind))
			if c.Kind == watch.ChangeRemoved {
				printer.Warn(fmt.Sprintf("%s was removed; waiting for it to come back", c.File))
				continue
			}
			exportOnce()
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

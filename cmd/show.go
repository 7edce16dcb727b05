package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/index"
	"github.com/papapumpkin/matn/internal/navmap"
	"github.com/papapumpkin/matn/internal/pipeline"
	"github.com/papapumpkin/matn/internal/resolve"
	"github.com/papapumpkin/matn/internal/ui"
)

var errBookNotFound = errors.New("no such book")

var showCmd = &cobra.Command{
	Use:   "show <file-or-index>",
	Short: "Print one book with its links resolved",
	Long: "Looks a book up by file name (s0101m.mul.xml) or catalog index (0). The\n" +
		"SQLite index is used when index_db is set and the database exists;\n" +
		"otherwise the catalog is resolved in memory.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		roman, _ := cmd.Flags().GetBool("roman")
		return runShow(cmd.Context(), cfg, ui.New(), args[0], roman)
	},
}

func runShow(ctx context.Context, cfg config.Config, printer *ui.Printer, key string, roman bool) error {
	b, err := lookupBook(ctx, cfg, key)
	if err != nil {
		return err
	}
	if roman {
		b = navmap.Books([]resolve.Book{b})[0]
	}
	printer.ShowBook(b)
	return nil
}

func lookupBook(ctx context.Context, cfg config.Config, key string) (resolve.Book, error) {
	i, numErr := strconv.Atoi(key)

	if path := cfg.IndexPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			store, err := index.Open(ctx, path)
			if err != nil {
				return resolve.Book{}, err
			}
			defer store.Close()
			if numErr == nil {
				return store.LookupIndex(ctx, i)
			}
			return store.Lookup(ctx, key)
		}
	}

	c, err := pipeline.New(cfg, log()).Catalog()
	if err != nil {
		return resolve.Book{}, err
	}
	res, err := resolve.Resolve(c.Books(), resolve.Options{})
	if err != nil {
		return resolve.Book{}, err
	}
	for _, b := range res.Books {
		if (numErr == nil && b.Index == i) || (numErr != nil && b.FileName == key) {
			return b, nil
		}
	}
	return resolve.Book{}, fmt.Errorf("%w: %s", errBookNotFound, key)
}

func init() {
	showCmd.Flags().Bool("roman", false, "print navigation paths in Roman script")
	rootCmd.AddCommand(showCmd)
}

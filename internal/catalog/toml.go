package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed books.toml
var embeddedTable []byte

// table is the on-disk shape of a catalog file: one [[book]] per entry.
type table struct {
	Books []Book `toml:"book"`
}

// Load builds the catalog from the table compiled into the binary.
func Load() (*Catalog, error) {
	c, err := Parse(embeddedTable)
	if err != nil {
		return nil, fmt.Errorf("embedded books.toml: %w", err)
	}
	return c, nil
}

// LoadFile builds a catalog from a TOML table on disk. The file uses the
// same layout as the embedded books.toml.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a TOML table and builds a validated catalog from it.
// Unknown keys are rejected so that a misspelt field cannot silently drop
// a reference.
func Parse(data []byte) (*Catalog, error) {
	books, err := decodeTable(data)
	if err != nil {
		return nil, err
	}
	return New(books)
}

func decodeTable(data []byte) ([]Book, error) {
	var t table
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("parsing catalog table: %w", err)
	}
	return t.Books, nil
}

package catalog

import (
	"io"

	"github.com/papapumpkin/matn/internal/artifact"
)

// WriteIndices writes the catalog as the index-form JSON artifact: one object
// per book, enums by name, reference fields as integers or null.
func WriteIndices(w io.Writer, c *Catalog) error {
	return artifact.Encode(w, c.books)
}

// ExportIndices writes the index-form artifact to path, creating the parent
// directory when needed. It returns the number of bytes written.
func ExportIndices(path string, c *Catalog) (int64, error) {
	return artifact.Write(path, c.books)
}

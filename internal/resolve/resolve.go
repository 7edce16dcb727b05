// Package resolve rewrites the numeric cross-references of the index-form
// catalog artifact into the file names of the referenced books.
package resolve

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/papapumpkin/matn/internal/artifact"
	"github.com/papapumpkin/matn/internal/catalog"
)

// ErrUnresolvedRef indicates a reference names an index that is not in the
// artifact and is not the NoLink sentinel.
var ErrUnresolvedRef = errors.New("unresolved reference")

// Book is a catalog entry whose reference fields hold file names.
type Book struct {
	Index            int              `json:"Index"`
	FileName         string           `json:"FileName"`
	LongNavPath      string           `json:"LongNavPath"`
	ShortNavPath     string           `json:"ShortNavPath"`
	Tier             catalog.Tier     `json:"Matn"`
	Pitaka           catalog.Pitaka   `json:"Pitaka"`
	BookType         catalog.BookType `json:"BookType"`
	Mula             *string          `json:"MulaIndex"`
	Atthakatha       *string          `json:"AtthakathaIndex"`
	Tika             *string          `json:"TikaIndex"`
	ChapterListTypes *string          `json:"ChapterListTypes"`
}

// Ref returns the resolved file name of reference field f, or nil.
func (b *Book) Ref(f catalog.RefField) *string {
	switch f {
	case catalog.RefMula:
		return b.Mula
	case catalog.RefAtthakatha:
		return b.Atthakatha
	default:
		return b.Tika
	}
}

func (b *Book) setRef(f catalog.RefField, name string) {
	switch f {
	case catalog.RefMula:
		b.Mula = &name
	case catalog.RefAtthakatha:
		b.Atthakatha = &name
	default:
		b.Tika = &name
	}
}

// Anomaly is a reference that could not be resolved.
type Anomaly struct {
	Index    int
	FileName string
	Field    catalog.RefField
	Value    int
}

func (a Anomaly) String() string {
	return fmt.Sprintf("book %d %s: %s = %d", a.Index, a.FileName, a.Field, a.Value)
}

// UnresolvedError lists every anomaly found by a strict Resolve.
type UnresolvedError struct {
	Anomalies []Anomaly
}

func (e *UnresolvedError) Error() string {
	parts := make([]string, len(e.Anomalies))
	for i, a := range e.Anomalies {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%d unresolved reference(s): %s", len(e.Anomalies), strings.Join(parts, "; "))
}

// Unwrap returns ErrUnresolvedRef.
func (e *UnresolvedError) Unwrap() error { return ErrUnresolvedRef }

// Options control how anomalies are handled.
type Options struct {
	// AllowDangling writes unresolvable references as null instead of
	// failing. The anomalies are still reported in Result.Anomalies.
	AllowDangling bool
}

// Result is the outcome of a Resolve call.
type Result struct {
	Books     []Book
	Anomalies []Anomaly
}

// Resolve replaces each populated reference with the file name of the book
// at that index. Unset references stay nil and NoLink becomes nil. Any other
// unknown index is an anomaly: a strict call fails with *UnresolvedError and
// returns no books.
func Resolve(books []catalog.Book, opts Options) (*Result, error) {
	names := make(map[int]string, len(books))
	for _, b := range books {
		if prev, ok := names[b.Index]; ok {
			return nil, fmt.Errorf("%w: %d used by %s and %s", catalog.ErrDuplicateIndex, b.Index, prev, b.FileName)
		}
		names[b.Index] = b.FileName
	}

	res := &Result{Books: make([]Book, 0, len(books))}
	for _, b := range books {
		r := Book{
			Index:            b.Index,
			FileName:         b.FileName,
			LongNavPath:      b.LongNavPath,
			ShortNavPath:     b.ShortNavPath,
			Tier:             b.Tier,
			Pitaka:           b.Pitaka,
			BookType:         b.BookType,
			ChapterListTypes: b.ChapterListTypes,
		}
		for _, f := range catalog.RefFields {
			ref := b.Ref(f)
			if ref == nil || *ref == catalog.NoLink {
				continue
			}
			name, ok := names[*ref]
			if !ok {
				res.Anomalies = append(res.Anomalies, Anomaly{
					Index:    b.Index,
					FileName: b.FileName,
					Field:    f,
					Value:    *ref,
				})
				continue
			}
			r.setRef(f, name)
		}
		res.Books = append(res.Books, r)
	}

	if len(res.Anomalies) > 0 && !opts.AllowDangling {
		return nil, &UnresolvedError{Anomalies: res.Anomalies}
	}
	return res, nil
}

// Load reads an index-form artifact written by catalog.ExportIndices.
func Load(path string) ([]catalog.Book, error) {
	var books []catalog.Book
	if err := artifact.Read(path, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// LoadResolved reads a file-name-form artifact written by Export.
func LoadResolved(path string) ([]Book, error) {
	var books []Book
	if err := artifact.Read(path, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Write writes resolved books in artifact format.
func Write(w io.Writer, books []Book) error {
	return artifact.Encode(w, books)
}

// Export writes resolved books to path and returns the number of bytes written.
func Export(path string, books []Book) (int64, error) {
	return artifact.Write(path, books)
}

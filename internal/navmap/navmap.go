// Package navmap builds the reader-facing artifacts from the resolved
// catalog: the book list with romanized navigation paths, and the jump map
// that tells a reader which mūla, aṭṭhakathā and ṭīkā files a page can
// switch to.
package navmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/papapumpkin/matn/internal/artifact"
	"github.com/papapumpkin/matn/internal/catalog"
	"github.com/papapumpkin/matn/internal/resolve"
	"github.com/papapumpkin/matn/internal/translit"
)

var (
	// ErrDuplicateFile indicates two books share a file name.
	ErrDuplicateFile = errors.New("duplicate file name")
	// ErrUnknownFile indicates a manual link names a file that is not in the catalog.
	ErrUnknownFile = errors.New("link to unknown file")
)

// Jump keys, in the order they appear in Entry.Y.
const (
	JumpMula       = 'm'
	JumpAtthakatha = 'a'
	JumpTika       = 't'
)

// Entry is the jump map record for one file.
type Entry struct {
	Title string       `json:"title,omitempty"`
	Matn  catalog.Tier `json:"matn"`
	// Y lists the available jumps ("mat", "at", ...) so a reader can
	// check for a link without probing each key.
	Y string `json:"y"`
	M string `json:"m,omitempty"`
	A string `json:"a,omitempty"`
	T string `json:"t,omitempty"`
}

func (e *Entry) link(kind rune, file string) {
	switch kind {
	case JumpMula:
		e.M = file
	case JumpAtthakatha:
		e.A = file
	case JumpTika:
		e.T = file
	}
	if !strings.ContainsRune(e.Y, kind) {
		e.Y += string(kind)
	}
}

// Map is the jump map keyed by file name.
type Map map[string]*Entry

// Link is a jump the catalog's reference fields do not express.
type Link struct {
	From string
	Kind rune
	To   string
}

// ManualLinks pairs the Visuddhimagga volumes with their mahāṭīkā. The
// catalog files them under "other", so no reference field carries them.
var ManualLinks = []Link{
	{From: "e0101n.mul.xml", Kind: JumpTika, To: "e0103n.att.xml"},
	{From: "e0102n.mul.xml", Kind: JumpTika, To: "e0104n.att.xml"},
	{From: "e0103n.att.xml", Kind: JumpMula, To: "e0101n.mul.xml"},
	{From: "e0104n.att.xml", Kind: JumpMula, To: "e0102n.mul.xml"},
}

// AvailableLinks splits links into those whose both ends are in books and
// those that name a missing file. ManualLinks only applies to the full
// edition, so a smaller catalog drops them instead of failing.
func AvailableLinks(books []resolve.Book, links []Link) (kept, skipped []Link) {
	files := make(map[string]bool, len(books))
	for _, b := range books {
		files[b.FileName] = true
	}
	for _, l := range links {
		if files[l.From] && files[l.To] {
			kept = append(kept, l)
		} else {
			skipped = append(skipped, l)
		}
	}
	return kept, skipped
}

// Options control map construction.
type Options struct {
	IncludeNavTitle bool
	Links           []Link
}

// Books returns a copy of books with both navigation paths romanized.
func Books(books []resolve.Book) []resolve.Book {
	out := make([]resolve.Book, len(books))
	for i, b := range books {
		if b.LongNavPath != "" {
			b.LongNavPath = translit.NavTitle(b.LongNavPath)
		}
		if b.ShortNavPath != "" {
			b.ShortNavPath = translit.NavTitle(b.ShortNavPath)
		}
		out[i] = b
	}
	return out
}

// Build creates the jump map from resolved books. The title, when included,
// is the book's LongNavPath as given, so callers normally pass the output
// of Books. Every link in opts.Links must name files in books, otherwise
// Build fails with ErrUnknownFile; use AvailableLinks to drop the rest.
func Build(books []resolve.Book, opts Options) (Map, error) {
	m := make(Map, len(books))
	for _, b := range books {
		if _, dup := m[b.FileName]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFile, b.FileName)
		}

		e := &Entry{Matn: b.Tier}
		if opts.IncludeNavTitle {
			e.Title = b.LongNavPath
		}
		if b.Mula != nil && *b.Mula != "" {
			e.link(JumpMula, *b.Mula)
		}
		if b.Atthakatha != nil && *b.Atthakatha != "" {
			e.link(JumpAtthakatha, *b.Atthakatha)
		}
		if b.Tika != nil && *b.Tika != "" {
			e.link(JumpTika, *b.Tika)
		}
		m[b.FileName] = e
	}

	for _, l := range opts.Links {
		e, ok := m[l.From]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFile, l.From)
		}
		if _, ok := m[l.To]; !ok {
			return nil, fmt.Errorf("%w: %s (linked from %s)", ErrUnknownFile, l.To, l.From)
		}
		e.link(l.Kind, l.To)
	}
	return m, nil
}

// ExportBooks writes the romanized book list to path.
func ExportBooks(path string, books []resolve.Book) (int64, error) {
	return artifact.Write(path, books)
}

// ExportMap writes the jump map to path. Keys are sorted.
func ExportMap(path string, m Map) (int64, error) {
	return artifact.Write(path, m)
}

// Package catalog holds the book catalog of the VRI Chaṭṭha Saṅgāyana
// Tipiṭaka edition: every XML file of the edition, its navigation paths, its
// commentary tier, and the indices of the matching mūla, aṭṭhakathā and ṭīkā
// books. The catalog is built once from an embedded TOML table and is
// read-only afterwards.
package catalog

import "fmt"

// NoLink is the reference value meaning "intentionally no linked book".
// It is accepted anywhere a reference index is and resolves to null.
const NoLink = 99999

// Tier is the commentary layer a book belongs to.
type Tier int

const (
	TierMula       Tier = iota + 1 // Root text
	TierAtthakatha                 // Commentary
	TierTika                       // Sub-commentary
	TierOther                      // Anything outside the three layers
)

var tierNames = []string{"", "Mula", "Atthakatha", "Tika", "Other"}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool { return t >= TierMula && t <= TierOther }

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// MarshalText renders the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tier %d", ErrInvalidEnum, int(t))
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText parses a tier name.
func (t *Tier) UnmarshalText(text []byte) error {
	i, err := parseName("tier", tierNames, string(text))
	if err != nil {
		return err
	}
	*t = Tier(i)
	return nil
}

// Pitaka is the top-level division of the corpus.
type Pitaka int

const (
	PitakaVinaya Pitaka = iota + 1
	PitakaSutta
	PitakaAbhidhamma
	PitakaOther
)

var pitakaNames = []string{"", "Vinaya", "Sutta", "Abhidhamma", "Other"}

// Valid reports whether p is one of the declared divisions.
func (p Pitaka) Valid() bool { return p >= PitakaVinaya && p <= PitakaOther }

func (p Pitaka) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Pitaka(%d)", int(p))
	}
	return pitakaNames[p]
}

// MarshalText renders the pitaka by name.
func (p Pitaka) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: pitaka %d", ErrInvalidEnum, int(p))
	}
	return []byte(pitakaNames[p]), nil
}

// UnmarshalText parses a pitaka name.
func (p *Pitaka) UnmarshalText(text []byte) error {
	i, err := parseName("pitaka", pitakaNames, string(text))
	if err != nil {
		return err
	}
	*p = Pitaka(i)
	return nil
}

// BookType describes how a logical work maps onto files. The zero value is
// BookTypeUnknown.
type BookType int

const (
	BookTypeUnknown BookType = iota
	BookTypeWhole            // One work, one file
	BookTypeMulti            // Several works merged in one file
	BookTypeSplit            // One work split across files
)

var bookTypeNames = []string{"Unknown", "Whole", "Multi", "Split"}

// Valid reports whether bt is one of the declared book types.
func (bt BookType) Valid() bool { return bt >= BookTypeUnknown && bt <= BookTypeSplit }

func (bt BookType) String() string {
	if !bt.Valid() {
		return fmt.Sprintf("BookType(%d)", int(bt))
	}
	return bookTypeNames[bt]
}

// MarshalText renders the book type by name.
func (bt BookType) MarshalText() ([]byte, error) {
	if !bt.Valid() {
		return nil, fmt.Errorf("%w: book type %d", ErrInvalidEnum, int(bt))
	}
	return []byte(bookTypeNames[bt]), nil
}

// UnmarshalText parses a book type name.
func (bt *BookType) UnmarshalText(text []byte) error {
	i, err := parseName("book type", bookTypeNames, string(text))
	if err != nil {
		return err
	}
	*bt = BookType(i)
	return nil
}

func parseName(kind string, names []string, s string) (int, error) {
	if s != "" {
		for i, n := range names {
			if n == s {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrInvalidEnum, kind, s)
}

// RefField names one of the three cross-reference fields of a Book.
type RefField int

const (
	RefMula RefField = iota
	RefAtthakatha
	RefTika
)

// RefFields lists the reference fields in output order.
var RefFields = []RefField{RefMula, RefAtthakatha, RefTika}

// Tier returns the tier a reference field must point at.
func (f RefField) Tier() Tier {
	switch f {
	case RefMula:
		return TierMula
	case RefAtthakatha:
		return TierAtthakatha
	default:
		return TierTika
	}
}

// String returns the field's name in the exported JSON.
func (f RefField) String() string {
	switch f {
	case RefMula:
		return "MulaIndex"
	case RefAtthakatha:
		return "AtthakathaIndex"
	default:
		return "TikaIndex"
	}
}

// Book is a single catalog entry. The reference fields hold the Index of the
// linked book, NoLink, or nil when the book has no counterpart in that tier.
type Book struct {
	Index            int      `toml:"index" json:"Index"`
	FileName         string   `toml:"file_name" json:"FileName"`
	LongNavPath      string   `toml:"long_nav_path" json:"LongNavPath"`
	ShortNavPath     string   `toml:"short_nav_path" json:"ShortNavPath"`
	Tier             Tier     `toml:"tier" json:"Matn"`
	Pitaka           Pitaka   `toml:"pitaka" json:"Pitaka"`
	BookType         BookType `toml:"book_type" json:"BookType"`
	Mula             *int     `toml:"mula" json:"MulaIndex"`
	Atthakatha       *int     `toml:"atthakatha" json:"AtthakathaIndex"`
	Tika             *int     `toml:"tika" json:"TikaIndex"`
	ChapterListTypes *string  `toml:"chapter_list_types" json:"ChapterListTypes"`
}

// Ref returns the value of reference field f.
func (b *Book) Ref(f RefField) *int {
	switch f {
	case RefMula:
		return b.Mula
	case RefAtthakatha:
		return b.Atthakatha
	default:
		return b.Tika
	}
}

// Clone returns a deep copy of b.
func (b Book) Clone() Book {
	b.Mula = cloneInt(b.Mula)
	b.Atthakatha = cloneInt(b.Atthakatha)
	b.Tika = cloneInt(b.Tika)
	if b.ChapterListTypes != nil {
		s := *b.ChapterListTypes
		b.ChapterListTypes = &s
	}
	return b
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

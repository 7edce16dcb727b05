package navmap

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/matn/internal/catalog"
	"github.com/papapumpkin/matn/internal/resolve"
)

func strp(s string) *string { return &s }

func resolvedCatalog(t *testing.T) []resolve.Book {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	res, err := resolve.Resolve(c.Books(), resolve.Options{})
	if err != nil {
		t.Fatalf("resolve.Resolve: %v", err)
	}
	return res.Books
}

func TestBooks_Romanizes(t *testing.T) {
	t.Parallel()

	in := resolvedCatalog(t)
	out := Books(in)

	if got, want := out[0].LongNavPath, "Tipiṭaka (mūla) > Sutta Piṭaka > Dīgha Nikāya > Sīlakkhandhavaggapāḷi"; got != want {
		t.Errorf("long path = %q, want %q", got, want)
	}
	if got, want := out[0].ShortNavPath, "Su.Pi. > Dī.Ni. > Sīlakkhandhavaggapāḷi"; got != want {
		t.Errorf("short path = %q, want %q", got, want)
	}
	if in[0].LongNavPath == out[0].LongNavPath {
		t.Error("Books modified its input")
	}
	if out[0].Atthakatha == nil || *out[0].Atthakatha != "s0101a.att.xml" {
		t.Errorf("references lost: %v", out[0].Atthakatha)
	}
}

func TestBuild_Catalog(t *testing.T) {
	t.Parallel()

	books := Books(resolvedCatalog(t))
	m, err := Build(books, Options{IncludeNavTitle: true, Links: ManualLinks})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m) != len(books) {
		t.Fatalf("map has %d entries, want %d", len(m), len(books))
	}

	tests := []struct {
		file string
		want Entry
	}{
		{
			file: "s0101m.mul.xml",
			want: Entry{
				Title: "Tipiṭaka (mūla) > Sutta Piṭaka > Dīgha Nikāya > Sīlakkhandhavaggapāḷi",
				Matn:  catalog.TierMula,
				Y:     "at",
				A:     "s0101a.att.xml",
				T:     "s0101t.tik.xml",
			},
		},
		{
			file: "e0101n.mul.xml",
			want: Entry{
				Title: "Añña > Visuddhimagga > Visuddhimagga-1",
				Matn:  catalog.TierOther,
				Y:     "t",
				T:     "e0103n.att.xml",
			},
		},
		{
			file: "e0104n.att.xml",
			want: Entry{
				Title: "Añña > Visuddhimagga > Visuddhimagga-mahāṭīkā-2",
				Matn:  catalog.TierOther,
				Y:     "m",
				M:     "e0102n.mul.xml",
			},
		},
	}

	for _, tt := range tests {
		got, ok := m[tt.file]
		if !ok {
			t.Errorf("%s missing from map", tt.file)
			continue
		}
		if diff := cmp.Diff(tt.want, *got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.file, diff)
		}
	}

	// Sentinel links produce no jump.
	abh := m["abh03m3.mul.xml"]
	if abh.T != "" || abh.Y != "a" {
		t.Errorf("abh03m3.mul.xml = %+v, want only an atthakatha jump", abh)
	}
}

func TestBuild_NoTitle(t *testing.T) {
	t.Parallel()

	books := []resolve.Book{
		{FileName: "a.mul.xml", LongNavPath: "A", Tier: catalog.TierMula, Atthakatha: strp("a.att.xml")},
		{FileName: "a.att.xml", LongNavPath: "B", Tier: catalog.TierAtthakatha, Mula: strp("a.mul.xml")},
	}
	m, err := Build(books, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m["a.mul.xml"].Title != "" {
		t.Errorf("title = %q, want empty", m["a.mul.xml"].Title)
	}

	data, err := json.Marshal(m["a.att.xml"])
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"matn":"Atthakatha","y":"m","m":"a.mul.xml"}`; got != want {
		t.Errorf("entry JSON = %s, want %s", got, want)
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	books := []resolve.Book{
		{FileName: "a.mul.xml", Tier: catalog.TierMula},
		{FileName: "b.mul.xml", Tier: catalog.TierMula},
	}

	tests := []struct {
		name  string
		books []resolve.Book
		links []Link
		want  error
	}{
		{
			name:  "duplicate file",
			books: append(append([]resolve.Book{}, books...), resolve.Book{FileName: "a.mul.xml"}),
			want:  ErrDuplicateFile,
		},
		{
			name:  "link from unknown file",
			books: books,
			links: []Link{{From: "x.xml", Kind: JumpTika, To: "a.mul.xml"}},
			want:  ErrUnknownFile,
		},
		{
			name:  "link to unknown file",
			books: books,
			links: []Link{{From: "a.mul.xml", Kind: JumpTika, To: "x.xml"}},
			want:  ErrUnknownFile,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Build(tt.books, Options{Links: tt.links}); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuild_ManualLinkDoesNotRepeatFlag(t *testing.T) {
	t.Parallel()

	books := []resolve.Book{
		{FileName: "a.mul.xml", Tier: catalog.TierMula, Tika: strp("a.tik.xml")},
		{FileName: "a.tik.xml", Tier: catalog.TierTika},
		{FileName: "b.tik.xml", Tier: catalog.TierTika},
	}
	m, err := Build(books, Options{Links: []Link{{From: "a.mul.xml", Kind: JumpTika, To: "b.tik.xml"}}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if e := m["a.mul.xml"]; e.Y != "t" || e.T != "b.tik.xml" {
		t.Errorf("entry = %+v, want y=t t=b.tik.xml", e)
	}
}

func TestExport(t *testing.T) {
	t.Parallel()

	books := Books(resolvedCatalog(t))
	m, err := Build(books, Options{IncludeNavTitle: true, Links: ManualLinks})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "output")
	if _, err := ExportBooks(filepath.Join(dir, "books.json"), books); err != nil {
		t.Fatalf("ExportBooks: %v", err)
	}
	if _, err := ExportMap(filepath.Join(dir, "tpo_map.json"), m); err != nil {
		t.Fatalf("ExportMap: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tpo_map.json"))
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]Entry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("tpo_map.json is not valid JSON: %v", err)
	}
	if back["e0102n.mul.xml"].T != "e0104n.att.xml" {
		t.Errorf("manual link missing after export: %+v", back["e0102n.mul.xml"])
	}
}

func TestAvailableLinks(t *testing.T) {
	t.Parallel()

	books := []resolve.Book{
		{FileName: "e0101n.mul.xml", Tier: catalog.TierOther},
		{FileName: "e0103n.att.xml", Tier: catalog.TierOther},
		{FileName: "a.mul.xml", Tier: catalog.TierMula},
	}
	kept, skipped := AvailableLinks(books, ManualLinks)

	wantKept := []Link{
		{From: "e0101n.mul.xml", Kind: JumpTika, To: "e0103n.att.xml"},
		{From: "e0103n.att.xml", Kind: JumpMula, To: "e0101n.mul.xml"},
	}
	if diff := cmp.Diff(wantKept, kept); diff != "" {
		t.Errorf("kept mismatch (-want +got):\n%s", diff)
	}
	if len(skipped) != 2 {
		t.Errorf("skipped %d links, want 2: %+v", len(skipped), skipped)
	}

	m, err := Build(books, Options{Links: kept})
	if err != nil {
		t.Fatalf("Build with available links: %v", err)
	}
	if m["e0101n.mul.xml"].T != "e0103n.att.xml" {
		t.Errorf("kept link not applied: %+v", m["e0101n.mul.xml"])
	}
}

func TestAvailableLinks_SmallCatalogKeepsNone(t *testing.T) {
	t.Parallel()

	books := []resolve.Book{{FileName: "a.mul.xml"}, {FileName: "a.att.xml"}}
	kept, skipped := AvailableLinks(books, ManualLinks)
	if len(kept) != 0 || len(skipped) != len(ManualLinks) {
		t.Errorf("kept %d, skipped %d; want 0 and %d", len(kept), len(skipped), len(ManualLinks))
	}
	if _, err := Build(books, Options{Links: kept}); err != nil {
		t.Errorf("Build: %v", err)
	}
}

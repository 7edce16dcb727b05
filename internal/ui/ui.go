// Package ui prints human-facing progress and summaries to stderr. Machine
// output (the artifacts themselves) never goes through it.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/matn/internal/catalog"
	"github.com/papapumpkin/matn/internal/index"
	"github.com/papapumpkin/matn/internal/resolve"
)

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan
	colorAccent  = lipgloss.Color("#FFD700") // Gold
	colorSuccess = lipgloss.Color("#00E676") // Green
	colorDanger  = lipgloss.Color("#FF5252") // Red
	colorMuted   = lipgloss.Color("#636363") // Gray
)

var (
	styleTitle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleDanger  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleLabel   = lipgloss.NewStyle().Foreground(colorMuted).Width(18)
)

// Printer writes styled messages.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to stderr.
func New() *Printer {
	return &Printer{w: os.Stderr}
}

// NewWriter returns a Printer writing to w.
func NewWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%s%s\n", styleDanger.Render("error: "), msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.w, "%s%s\n", styleWarn.Render("warning: "), msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, styleMuted.Render(msg))
}

// ArtifactWritten reports one written artifact with its record count and size.
func (p *Printer) ArtifactWritten(path string, records int, size int64) {
	fmt.Fprintf(p.w, "%s %s %s\n",
		styleSuccess.Render("✓"),
		path,
		styleMuted.Render(fmt.Sprintf("(%d records, %s)", records, humanize.Bytes(uint64(size)))))
}

// IndexWritten reports a filled SQLite index.
func (p *Printer) IndexWritten(path string, m index.Meta) {
	fmt.Fprintf(p.w, "%s %s %s\n",
		styleSuccess.Render("✓"),
		path,
		styleMuted.Render(fmt.Sprintf("(%d records, run %s)", m.BookCount, m.RunID)))
}

// ValidateResult prints the outcome of validating a catalog table.
func (p *Printer) ValidateResult(source string, count int, errs []catalog.ValidationError) {
	if len(errs) == 0 {
		fmt.Fprintf(p.w, "%s %d book(s), no errors\n", styleSuccess.Render(fmt.Sprintf("✓ catalog %s", source)), count)
		return
	}
	fmt.Fprintf(p.w, "%s %d error(s):\n", styleDanger.Render(fmt.Sprintf("✗ catalog %s", source)), len(errs))
	for i := range errs {
		fmt.Fprintf(p.w, "  %s%s %s\n", styleDanger.Render("• "), errs[i].Error(), styleMuted.Render("["+string(errs[i].Category)+"]"))
	}
}

// Anomalies lists references that did not resolve.
func (p *Printer) Anomalies(anoms []resolve.Anomaly) {
	if len(anoms) == 0 {
		return
	}
	fmt.Fprintf(p.w, "%s\n", styleWarn.Render(fmt.Sprintf("⚠ %d unresolved reference(s) written as null", len(anoms))))
	for _, a := range anoms {
		fmt.Fprintf(p.w, "  %s%s\n", styleWarn.Render("• "), a.String())
	}
}

// ShowBook prints every field of a resolved book.
func (p *Printer) ShowBook(b resolve.Book) {
	fmt.Fprintln(p.w, styleTitle.Render(fmt.Sprintf("#%d %s", b.Index, b.FileName)))
	row := func(label, value string) {
		fmt.Fprintf(p.w, "  %s%s\n", styleLabel.Render(label), value)
	}
	row("long path", b.LongNavPath)
	row("short path", b.ShortNavPath)
	row("tier", b.Tier.String())
	row("pitaka", b.Pitaka.String())
	row("book type", b.BookType.String())
	for _, f := range catalog.RefFields {
		row(strings.TrimSuffix(strings.ToLower(f.String()), "index"), orNone(b.Ref(f)))
	}
	row("chapter lists", orNone(b.ChapterListTypes))
}

func orNone(s *string) string {
	if s == nil {
		return styleMuted.Render("(none)")
	}
	return *s
}

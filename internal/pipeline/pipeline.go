// Package pipeline runs the export stages in order: the catalog table becomes
// the index-form artifact, which is resolved to the filename form, which in
// turn feeds the reader artifacts and the optional SQLite index. Each stage
// reads the previous stage's file so any of them can be re-run alone.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/papapumpkin/matn/internal/catalog"
	"github.com/papapumpkin/matn/internal/config"
	"github.com/papapumpkin/matn/internal/index"
	"github.com/papapumpkin/matn/internal/navmap"
	"github.com/papapumpkin/matn/internal/resolve"
)

// Artifact describes one written output file.
type Artifact struct {
	Path    string
	Records int
	Size    int64
}

// Report collects everything a full export produced.
type Report struct {
	Artifacts []Artifact
	Anomalies []resolve.Anomaly
	Index     *index.Meta
	IndexPath string
}

// Runner executes pipeline stages against one configuration.
type Runner struct {
	cfg config.Config
	log *zap.Logger
}

// New returns a Runner. A nil logger discards log output.
func New(cfg config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}
}

// Catalog loads the configured catalog table, or the embedded one when no
// file is configured.
func (r *Runner) Catalog() (*catalog.Catalog, error) {
	if r.cfg.CatalogFile == "" {
		return catalog.Load()
	}
	return catalog.LoadFile(r.cfg.CatalogFile)
}

// Build writes the index-form artifact from the catalog table.
func (r *Runner) Build() (Artifact, error) {
	c, err := r.Catalog()
	if err != nil {
		return Artifact{}, err
	}
	path := r.cfg.IndicesPath()
	size, err := catalog.ExportIndices(path, c)
	if err != nil {
		return Artifact{}, err
	}
	r.log.Info("wrote indices", zap.String("file", path), zap.Int("records", c.Len()), zap.Int64("bytes", size))
	return Artifact{Path: path, Records: c.Len(), Size: size}, nil
}

// Resolve reads the index-form artifact and writes the filename form. In
// strict mode an unresolved reference fails the stage and nothing is
// written; otherwise the anomalies are returned alongside the artifact.
func (r *Runner) Resolve() (Artifact, []resolve.Anomaly, error) {
	in := r.cfg.IndicesPath()
	books, err := resolve.Load(in)
	if err != nil {
		return Artifact{}, nil, err
	}

	res, err := resolve.Resolve(books, resolve.Options{AllowDangling: r.cfg.AllowDangling})
	if err != nil {
		var ue *resolve.UnresolvedError
		if errors.As(err, &ue) {
			for _, a := range ue.Anomalies {
				r.log.Error("unresolved reference", anomalyFields(a)...)
			}
		}
		return Artifact{}, nil, fmt.Errorf("resolving %s: %w", in, err)
	}
	for _, a := range res.Anomalies {
		r.log.Warn("unresolved reference written as null", anomalyFields(a)...)
	}

	out := r.cfg.ResolvedPath()
	size, err := resolve.Export(out, res.Books)
	if err != nil {
		return Artifact{}, nil, err
	}
	r.log.Info("wrote resolved catalog", zap.String("file", out), zap.Int("records", len(res.Books)), zap.Int64("bytes", size))
	return Artifact{Path: out, Records: len(res.Books), Size: size}, res.Anomalies, nil
}

// Map reads the filename-form artifact and writes the romanized book list
// and the jump map.
func (r *Runner) Map() ([]Artifact, error) {
	in := r.cfg.ResolvedPath()
	resolved, err := resolve.LoadResolved(in)
	if err != nil {
		return nil, err
	}

	books := navmap.Books(resolved)
	links, skipped := navmap.AvailableLinks(books, navmap.ManualLinks)
	for _, l := range skipped {
		r.log.Debug("skipping manual link, file not in catalog",
			zap.String("from", l.From), zap.String("to", l.To), zap.String("kind", string(l.Kind)))
	}
	m, err := navmap.Build(books, navmap.Options{
		IncludeNavTitle: r.cfg.IncludeNavTitle,
		Links:           links,
	})
	if err != nil {
		return nil, fmt.Errorf("building jump map from %s: %w", in, err)
	}

	booksPath := r.cfg.BooksPath()
	booksSize, err := navmap.ExportBooks(booksPath, books)
	if err != nil {
		return nil, err
	}
	r.log.Info("wrote books", zap.String("file", booksPath), zap.Int("records", len(books)), zap.Int64("bytes", booksSize))

	mapPath := r.cfg.MapPath()
	mapSize, err := navmap.ExportMap(mapPath, m)
	if err != nil {
		return nil, err
	}
	r.log.Info("wrote jump map", zap.String("file", mapPath), zap.Int("records", len(m)), zap.Int64("bytes", mapSize))

	return []Artifact{
		{Path: booksPath, Records: len(books), Size: booksSize},
		{Path: mapPath, Records: len(m), Size: mapSize},
	}, nil
}

// Index loads the filename-form artifact into the SQLite database at path.
func (r *Runner) Index(ctx context.Context, path string) (index.Meta, error) {
	if path == "" {
		return index.Meta{}, errors.New("index: no database path configured")
	}
	books, err := resolve.LoadResolved(r.cfg.ResolvedPath())
	if err != nil {
		return index.Meta{}, err
	}

	store, err := index.Open(ctx, path)
	if err != nil {
		return index.Meta{}, err
	}
	defer store.Close()

	meta, err := store.Replace(ctx, books)
	if err != nil {
		return index.Meta{}, err
	}
	r.log.Info("indexed books",
		zap.String("db", path),
		zap.Int("records", meta.BookCount),
		zap.String("run_id", meta.RunID))
	return meta, nil
}

// Export runs every stage. The SQLite index is filled only when index_db is
// configured.
func (r *Runner) Export(ctx context.Context) (*Report, error) {
	rep := &Report{}

	a, err := r.Build()
	if err != nil {
		return nil, err
	}
	rep.Artifacts = append(rep.Artifacts, a)

	a, anoms, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	rep.Artifacts = append(rep.Artifacts, a)
	rep.Anomalies = anoms

	as, err := r.Map()
	if err != nil {
		return nil, err
	}
	rep.Artifacts = append(rep.Artifacts, as...)

	if path := r.cfg.IndexPath(); path != "" {
		meta, err := r.Index(ctx, path)
		if err != nil {
			return nil, err
		}
		rep.Index = &meta
		rep.IndexPath = path
	}
	return rep, nil
}

func anomalyFields(a resolve.Anomaly) []zap.Field {
	return []zap.Field{
		zap.Int("index", a.Index),
		zap.String("file", a.FileName),
		zap.Stringer("field", a.Field),
		zap.Int("value", a.Value),
	}
}

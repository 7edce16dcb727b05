// Package index stores the resolved catalog in a SQLite database so other
// tools can look books up by file name or index without parsing JSON.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/matn/internal/resolve"
)

// ErrNotFound is returned by lookups for a book that is not in the index.
var ErrNotFound = errors.New("book not in index")

const schema = `
CREATE TABLE IF NOT EXISTS books (
    file_name          TEXT PRIMARY KEY,
    idx                INTEGER NOT NULL UNIQUE,
    long_nav_path      TEXT NOT NULL DEFAULT '',
    short_nav_path     TEXT NOT NULL DEFAULT '',
    matn               TEXT NOT NULL,
    pitaka             TEXT NOT NULL,
    book_type          TEXT NOT NULL,
    mula               TEXT,
    atthakatha         TEXT,
    tika               TEXT,
    chapter_list_types TEXT
);

CREATE TABLE IF NOT EXISTS meta (
    id           INTEGER PRIMARY KEY CHECK (id = 1),
    run_id       TEXT NOT NULL,
    generated_at TEXT NOT NULL,
    book_count   INTEGER NOT NULL
);
`

// Meta describes the run that last filled the index.
type Meta struct {
	RunID       string
	GeneratedAt time.Time
	BookCount   int
}

// Store is a SQLite-backed book index.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the index at path and creates the schema if it
// does not exist.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("index: open database: %w", err)
	}

	// SQLite has a single writer; one connection keeps PRAGMAs in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("index: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("index: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("index: create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Replace swaps the index contents for books in a single transaction and
// records a new run.
func (s *Store) Replace(ctx context.Context, books []resolve.Book) (Meta, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Meta{}, fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM books"); err != nil {
		return Meta{}, fmt.Errorf("index: clear books: %w", err)
	}

	const q = `
		INSERT INTO books (file_name, idx, long_nav_path, short_nav_path, matn, pitaka,
			book_type, mula, atthakatha, tika, chapter_list_types)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return Meta{}, fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range books {
		if _, err := stmt.ExecContext(ctx,
			b.FileName, b.Index, b.LongNavPath, b.ShortNavPath,
			b.Tier.String(), b.Pitaka.String(), b.BookType.String(),
			nullable(b.Mula), nullable(b.Atthakatha), nullable(b.Tika), nullable(b.ChapterListTypes),
		); err != nil {
			return Meta{}, fmt.Errorf("index: insert %q: %w", b.FileName, err)
		}
	}

	meta := Meta{
		RunID:       uuid.NewString(),
		GeneratedAt: s.now().UTC().Truncate(time.Second),
		BookCount:   len(books),
	}
	const mq = `
		INSERT INTO meta (id, run_id, generated_at, book_count) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			run_id       = excluded.run_id,
			generated_at = excluded.generated_at,
			book_count   = excluded.book_count`
	if _, err := tx.ExecContext(ctx, mq, meta.RunID, meta.GeneratedAt.Format(time.RFC3339), meta.BookCount); err != nil {
		return Meta{}, fmt.Errorf("index: write meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Meta{}, fmt.Errorf("index: commit: %w", err)
	}
	return meta, nil
}

const selectBook = `SELECT idx, file_name, long_nav_path, short_nav_path, matn, pitaka,
	book_type, mula, atthakatha, tika, chapter_list_types FROM books`

// Lookup returns the book stored under file name.
func (s *Store) Lookup(ctx context.Context, file string) (resolve.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, selectBook+" WHERE file_name = ?", file))
	if errors.Is(err, sql.ErrNoRows) {
		return resolve.Book{}, fmt.Errorf("index: %w: %s", ErrNotFound, file)
	}
	if err != nil {
		return resolve.Book{}, fmt.Errorf("index: lookup %q: %w", file, err)
	}
	return b, nil
}

// LookupIndex returns the book stored under catalog index i.
func (s *Store) LookupIndex(ctx context.Context, i int) (resolve.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, selectBook+" WHERE idx = ?", i))
	if errors.Is(err, sql.ErrNoRows) {
		return resolve.Book{}, fmt.Errorf("index: %w: #%d", ErrNotFound, i)
	}
	if err != nil {
		return resolve.Book{}, fmt.Errorf("index: lookup #%d: %w", i, err)
	}
	return b, nil
}

// Count returns the number of indexed books.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count books: %w", err)
	}
	return n, nil
}

// Meta returns the record of the last Replace. It returns ErrNotFound when
// the index has never been filled.
func (s *Store) Meta(ctx context.Context) (Meta, error) {
	var m Meta
	var ts string
	err := s.db.QueryRowContext(ctx, "SELECT run_id, generated_at, book_count FROM meta WHERE id = 1").
		Scan(&m.RunID, &ts, &m.BookCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Meta{}, fmt.Errorf("index: %w: no run recorded", ErrNotFound)
	}
	if err != nil {
		return Meta{}, fmt.Errorf("index: read meta: %w", err)
	}
	m.GeneratedAt, err = time.Parse(time.RFC3339, ts)
	if err != nil {
		return Meta{}, fmt.Errorf("index: parse generated_at: %w", err)
	}
	return m, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanBook(row *sql.Row) (resolve.Book, error) {
	var (
		b                    resolve.Book
		tier, pitaka, bt     string
		mula, att, tika, clt sql.NullString
	)
	if err := row.Scan(&b.Index, &b.FileName, &b.LongNavPath, &b.ShortNavPath,
		&tier, &pitaka, &bt, &mula, &att, &tika, &clt); err != nil {
		return resolve.Book{}, err
	}
	if err := b.Tier.UnmarshalText([]byte(tier)); err != nil {
		return resolve.Book{}, err
	}
	if err := b.Pitaka.UnmarshalText([]byte(pitaka)); err != nil {
		return resolve.Book{}, err
	}
	if err := b.BookType.UnmarshalText([]byte(bt)); err != nil {
		return resolve.Book{}, err
	}
	b.Mula = fromNull(mula)
	b.Atthakatha = fromNull(att)
	b.Tika = fromNull(tika)
	b.ChapterListTypes = fromNull(clt)
	return b, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

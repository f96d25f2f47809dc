// Package search keeps a full-text index over a workspace snapshot.
//
// Each published snapshot gets its own in-memory SQLite database with one
// FTS5 table. Nothing touches disk and nothing outlives the process.
package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/HendryAvila/jumble/internal/descriptor"
	"github.com/HendryAvila/jumble/internal/tree"
	"github.com/HendryAvila/jumble/internal/workspace"
)

// Entry kinds stored in the index.
const (
	KindProject    = "project"
	KindCommand    = "command"
	KindConcept    = "concept"
	KindConvention = "convention"
	KindGotcha     = "gotcha"
	KindDoc        = "doc"
	KindSkill      = "skill"
)

// Kinds lists every entry kind in a stable order.
var Kinds = []string{KindProject, KindCommand, KindConcept, KindConvention, KindGotcha, KindDoc, KindSkill}

// ErrEmptyQuery is returned by Search when the query has no words.
var ErrEmptyQuery = errors.New("search query is empty")

const (
	defaultLimit = 10
	maxLimit     = 50
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Entry is one indexed item.
type Entry struct {
	Project string `json:"project"`
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Body    string `json:"body"`
}

// Hit is a search result. Score is the negated bm25 rank, so higher is
// better.
type Hit struct {
	Entry
	Score float64 `json:"score"`
}

// Options narrows a search.
type Options struct {
	Project string
	Kind    string
	Limit   int
}

// Index is a read-only FTS5 index over one snapshot.
type Index struct {
	db      *sql.DB
	entries int
}

// Build indexes every project of ws.
func Build(ctx context.Context, ws *workspace.Workspace) (*Index, error) {
	// Each connection to :memory: is a separate database, so pin the pool
	// to a single connection that is never recycled.
	db, err := openDB("sqlite", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "search: open database")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ix := &Index{db: db}
	if err := ix.load(ctx, ws); err != nil {
		_ = db.Close()
		return nil, err
	}
	return ix, nil
}

func (ix *Index) load(ctx context.Context, ws *workspace.Workspace) error {
	if _, err := ix.db.ExecContext(ctx, `
		CREATE VIRTUAL TABLE entries USING fts5(
			project UNINDEXED,
			kind UNINDEXED,
			key,
			body
		)`); err != nil {
		return errors.Wrap(err, "search: create schema")
	}

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "search: begin")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (project, kind, key, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "search: prepare insert")
	}
	defer func() { _ = stmt.Close() }()

	for _, name := range ws.Names() {
		for _, e := range Entries(ws.Projects[name]) {
			if _, err := stmt.ExecContext(ctx, e.Project, e.Kind, e.Key, e.Body); err != nil {
				return errors.Wrapf(err, "search: index %s %s/%s", e.Kind, e.Project, e.Key)
			}
			ix.entries++
		}
	}
	return errors.Wrap(tx.Commit(), "search: commit")
}

// Entries flattens a descriptor into index entries.
func Entries(d *descriptor.Descriptor) []Entry {
	out := []Entry{{
		Project: d.Name,
		Kind:    KindProject,
		Key:     d.Name,
		Body:    joinNonEmpty(d.Name, d.Description, d.Language),
	}}
	add := func(kind, key string, parts ...string) {
		out = append(out, Entry{Project: d.Name, Kind: kind, Key: key, Body: joinNonEmpty(parts...)})
	}

	for _, name := range tree.SortedKeys(d.Commands) {
		add(KindCommand, name, name, d.Commands[name])
	}
	for _, name := range tree.SortedKeys(d.Concepts) {
		c := d.Concepts[name]
		add(KindConcept, name, append([]string{name, c.Summary}, c.Files...)...)
	}
	for i, text := range d.Conventions {
		add(KindConvention, fmt.Sprintf("conventions[%d]", i), text)
	}
	for i, text := range d.Gotchas {
		add(KindGotcha, fmt.Sprintf("gotchas[%d]", i), text)
	}
	for _, topic := range tree.SortedKeys(d.Docs) {
		doc := d.Docs[topic]
		add(KindDoc, topic, topic, doc.Path, doc.Summary)
	}
	for _, topic := range tree.SortedKeys(d.Skills) {
		s := d.Skills[topic]
		add(KindSkill, topic, topic, s.Description, s.Content, s.File)
	}
	return out
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return ix.entries }

// Search runs query against the index, best matches first.
func (ix *Index) Search(ctx context.Context, query string, opts Options) ([]Hit, error) {
	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return nil, ErrEmptyQuery
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	sqlStr := `
		SELECT project, kind, key, body, rank
		FROM entries
		WHERE entries MATCH ?
	`
	args := []any{ftsQuery}
	if opts.Project != "" {
		sqlStr += " AND project = ?"
		args = append(args, opts.Project)
	}
	if opts.Kind != "" {
		sqlStr += " AND kind = ?"
		args = append(args, opts.Kind)
	}
	sqlStr += " ORDER BY rank, project, kind, key LIMIT ?"
	args = append(args, limit)

	rows, err := ix.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(err, "search")
	}
	defer func() { _ = rows.Close() }()

	hits := []Hit{}
	for rows.Next() {
		var h Hit
		var rank float64
		if err := rows.Scan(&h.Project, &h.Kind, &h.Key, &h.Body, &rank); err != nil {
			return nil, errors.Wrap(err, "search: scan")
		}
		h.Score = -rank
		hits = append(hits, h)
	}
	return hits, errors.Wrap(rows.Err(), "search: rows")
}

// Close releases the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// sanitizeFTS wraps each word in quotes so FTS5 operators in user input
// are matched literally.
// "jwt auth-flow" → `"jwt" "auth-flow"`
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	out := words[:0]
	for _, w := range words {
		w = strings.ReplaceAll(w, `"`, "")
		if w == "" {
			continue
		}
		out = append(out, `"`+w+`"`)
	}
	return strings.Join(out, " ")
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

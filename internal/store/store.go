// Package store archives analysis runs in SQLite.
//
// The archive is history only: it keeps run summaries and headline findings
// so rates and variant counts can be compared between drafts. It is never
// read back as analysis input.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/prosestat/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when no run matches an id.
var ErrNotFound = errors.New("run not found")

// Store wraps SQLite access for archived runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			corpus_path TEXT NOT NULL,
			rules_path TEXT NOT NULL,
			chapters INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			flagged INTEGER NOT NULL,
			skipped INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS overuse_findings (
			run_id TEXT NOT NULL,
			lemma TEXT NOT NULL,
			total INTEGER NOT NULL,
			top_chapter TEXT NOT NULL,
			top_count INTEGER NOT NULL,
			share REAL NOT NULL,
			severity TEXT NOT NULL,
			PRIMARY KEY (run_id, lemma)
		);`,
		`CREATE TABLE IF NOT EXISTS rate_findings (
			run_id TEXT NOT NULL,
			word TEXT NOT NULL,
			count INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			rate REAL NOT NULL,
			threshold REAL NOT NULL,
			exceeds INTEGER NOT NULL,
			severity TEXT NOT NULL,
			PRIMARY KEY (run_id, word)
		);`,
		`CREATE TABLE IF NOT EXISTS variant_counts (
			run_id TEXT NOT NULL,
			family TEXT NOT NULL,
			form TEXT NOT NULL,
			preferred INTEGER NOT NULL,
			count INTEGER NOT NULL,
			severity TEXT NOT NULL,
			PRIMARY KEY (run_id, family, form)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_rate_findings_word ON rate_findings(word);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its findings in one transaction. A missing id
// or timestamp is filled in. The stored id is returned.
func (s *Store) InsertRun(ctx context.Context, rec model.RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, corpus_path, rules_path, chapters, total_words, flagged, skipped)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CreatedAt.UTC().Format(timeLayout),
		rec.CorpusPath,
		rec.RulesPath,
		rec.Chapters,
		rec.TotalWords,
		rec.Flagged,
		rec.Skipped,
	)
	if err != nil {
		return "", err
	}
	for _, f := range rec.Overuse {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO overuse_findings (run_id, lemma, total, top_chapter, top_count, share, severity)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, f.Lemma, f.Total, f.TopChapter, f.TopCount, f.Share, f.Severity.String()); err != nil {
			return "", err
		}
	}
	for _, f := range rec.Rates {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO rate_findings (run_id, word, count, total_words, rate, threshold, exceeds, severity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, f.Word, f.Count, f.TotalWords, f.Rate, f.Threshold, f.Exceeds, f.Severity.String()); err != nil {
			return "", err
		}
	}
	for _, v := range rec.Variants {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO variant_counts (run_id, family, form, preferred, count, severity)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, v.FamilyID, v.Form, v.Preferred, v.Count, v.Severity.String()); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ListRuns returns the most recent runs, oldest first. last <= 0 lists all.
func (s *Store) ListRuns(ctx context.Context, last int) ([]model.RunSummary, error) {
	if last <= 0 {
		last = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, corpus_path, rules_path, chapters, total_words, flagged, skipped
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, last)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(runs)
	return runs, nil
}

// GetRun loads one run by id or unique id prefix.
func (s *Store) GetRun(ctx context.Context, id string) (model.RunRecord, error) {
	if id == "" {
		return model.RunRecord{}, ErrNotFound
	}
	matches, err := s.findRuns(ctx, id)
	if err != nil {
		return model.RunRecord{}, err
	}
	switch len(matches) {
	case 0:
		return model.RunRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
	default:
		// Matches are ordered by id, so an exact match comes first.
		if matches[0].ID != id {
			return model.RunRecord{}, fmt.Errorf("run id %q is ambiguous", id)
		}
	}

	rec := model.RunRecord{RunSummary: matches[0]}
	if rec.Overuse, err = s.listOveruse(ctx, rec.ID); err != nil {
		return model.RunRecord{}, err
	}
	if rec.Rates, err = s.listRates(ctx, rec.ID); err != nil {
		return model.RunRecord{}, err
	}
	if rec.Variants, err = s.listVariants(ctx, rec.ID); err != nil {
		return model.RunRecord{}, err
	}
	return rec, nil
}

// RateHistory returns the rate of word in the most recent runs that watched
// it, oldest first. last <= 0 lists all.
func (s *Store) RateHistory(ctx context.Context, word string, last int) ([]model.RatePoint, error) {
	if last <= 0 {
		last = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.created_at, f.count, f.total_words, f.rate, f.threshold, f.exceeds
		 FROM rate_findings f
		 JOIN runs r ON r.id = f.run_id
		 WHERE f.word = ?
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT ?`, word, last)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var points []model.RatePoint
	for rows.Next() {
		var p model.RatePoint
		var createdAt string
		if err := rows.Scan(&p.RunID, &createdAt, &p.Count, &p.TotalWords, &p.Rate, &p.Threshold, &p.Exceeds); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = parsed
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(points)
	return points, nil
}

func (s *Store) findRuns(ctx context.Context, prefix string) ([]model.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, corpus_path, rules_path, chapters, total_words, flagged, skipped
		 FROM runs
		 WHERE substr(id, 1, length(?)) = ?
		 ORDER BY id
		 LIMIT 2`, prefix, prefix)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) listOveruse(ctx context.Context, runID string) ([]model.OveruseFinding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lemma, total, top_chapter, top_count, share, severity
		 FROM overuse_findings
		 WHERE run_id = ?
		 ORDER BY total DESC, lemma ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.OveruseFinding
	for rows.Next() {
		var f model.OveruseFinding
		var sev string
		if err := rows.Scan(&f.Lemma, &f.Total, &f.TopChapter, &f.TopCount, &f.Share, &sev); err != nil {
			return nil, err
		}
		if err := f.Severity.UnmarshalText([]byte(sev)); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) listRates(ctx context.Context, runID string) ([]model.RateFinding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, count, total_words, rate, threshold, exceeds, severity
		 FROM rate_findings
		 WHERE run_id = ?
		 ORDER BY word ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.RateFinding
	for rows.Next() {
		var f model.RateFinding
		var sev string
		if err := rows.Scan(&f.Word, &f.Count, &f.TotalWords, &f.Rate, &f.Threshold, &f.Exceeds, &sev); err != nil {
			return nil, err
		}
		if err := f.Severity.UnmarshalText([]byte(sev)); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) listVariants(ctx context.Context, runID string) ([]model.VariantCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT family, form, preferred, count, severity
		 FROM variant_counts
		 WHERE run_id = ?
		 ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.VariantCount
	for rows.Next() {
		var v model.VariantCount
		var sev string
		if err := rows.Scan(&v.FamilyID, &v.Form, &v.Preferred, &v.Count, &sev); err != nil {
			return nil, err
		}
		if err := v.Severity.UnmarshalText([]byte(sev)); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (model.RunSummary, error) {
	var run model.RunSummary
	var createdAt string
	if err := row.Scan(&run.ID, &createdAt, &run.CorpusPath, &run.RulesPath,
		&run.Chapters, &run.TotalWords, &run.Flagged, &run.Skipped); err != nil {
		return model.RunSummary{}, err
	}
	parsed, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return model.RunSummary{}, err
	}
	run.CreatedAt = parsed
	return run, nil
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

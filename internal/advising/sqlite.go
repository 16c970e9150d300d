package advising

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists catalog and enrollment in a SQLite database, for
// runs where mutations should survive the process. A process-local mutex
// serializes mutations on top of the WAL busy timeout.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	slog.Info("enrollment store opened", "path", path)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS catalog (
			code TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			credits INTEGER NOT NULL,
			seq INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS enrollment (
			code TEXT PRIMARY KEY REFERENCES catalog(code),
			enrolled_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}

// Seed upserts the catalog rows, preserving their seed order. Existing
// enrollment rows are kept.
func (s *SQLiteStore) Seed(ctx context.Context, catalog []Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, c := range catalog {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO catalog (code, title, credits, seq) VALUES (?, ?, ?, ?)`,
			c.Code, c.Title, c.Credits, i); err != nil {
			return fmt.Errorf("seed %q: %w", c.Code, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Catalog(ctx context.Context) ([]Course, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, title, credits FROM catalog ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (s *SQLiteStore) Lookup(ctx context.Context, code string) (Course, bool, error) {
	var c Course
	err := s.db.QueryRowContext(ctx,
		`SELECT code, title, credits FROM catalog WHERE code = ?`, code).
		Scan(&c.Code, &c.Title, &c.Credits)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, false, nil
	}
	if err != nil {
		return Course{}, false, fmt.Errorf("lookup %q: %w", code, err)
	}
	return c, true, nil
}

func (s *SQLiteStore) Schedule(ctx context.Context) ([]Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.code, c.title, c.credits FROM enrollment e JOIN catalog c ON c.code = e.code ORDER BY c.code`)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (s *SQLiteStore) Enrolled(ctx context.Context, code string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM enrollment WHERE code = ?`, code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("enrolled %q: %w", code, err)
	}
	return true, nil
}

func (s *SQLiteStore) Enroll(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO enrollment (code) SELECT code FROM catalog WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("enroll %q: %w", code, err)
	}
	// Zero rows means either already enrolled or not in catalog; verify the
	// catalog side so a bad code still surfaces as a store fault here.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, ok, err := s.Lookup(ctx, code); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("enroll %q: not in catalog", code)
		}
	}
	return nil
}

func (s *SQLiteStore) Drop(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM enrollment WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("drop %q: %w", code, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("drop %q: not enrolled", code)
	}
	return nil
}

func scanCourses(rows *sql.Rows) ([]Course, error) {
	var out []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.Code, &c.Title, &c.Credits); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

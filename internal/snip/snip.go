// Package snip stores named snapshots of entity streams in SQLite so
// intermediate pipeline results can be replayed later.
package snip

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when no snip exists under the requested name.
var ErrNotFound = errors.New("snip not found")

// Snip is one named stash of entities, stored as one GeoJSON Feature per
// line of Body.
type Snip struct {
	ID        string
	Name      string
	Body      string
	Count     int
	CreatedAt time.Time
}

// Store persists snips in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the snip database at path, creating the file and parent
// directory if needed, and applies pending migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating snip database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating snip database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	// Not deferring m.Close() here: it would close the shared db handle.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// Save stores body under name, replacing any existing snip with that name.
// A re-saved snip keeps its id; body, count and created_at refresh.
func (s *Store) Save(ctx context.Context, name, body string, count int) (Snip, error) {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO snips(id, name, body, feature_count, created_at) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		body=excluded.body,
		feature_count=excluded.feature_count,
		created_at=excluded.created_at;
	`, uuid.NewString(), name, body, count, now())
	if err != nil {
		return Snip{}, err
	}
	return s.Show(ctx, name)
}

// Show returns the snip stored under name.
func (s *Store) Show(ctx context.Context, name string) (Snip, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, name, body, feature_count, created_at FROM snips WHERE name = ?`, name)
	var sn Snip
	if err := row.Scan(&sn.ID, &sn.Name, &sn.Body, &sn.Count, &sn.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snip{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Snip{}, err
	}
	return sn, nil
}

// List returns all snips ordered by name.
func (s *Store) List(ctx context.Context) ([]Snip, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, name, body, feature_count, created_at FROM snips ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snip
	for rows.Next() {
		var sn Snip
		if err := rows.Scan(&sn.ID, &sn.Name, &sn.Body, &sn.Count, &sn.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

// Remove deletes the snip stored under name.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snips WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// now returns UTC time truncated to seconds (consistent with SQLite default).
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

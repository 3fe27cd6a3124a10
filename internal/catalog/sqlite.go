package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chepilot/menubot/internal/ids"
	"github.com/chepilot/menubot/internal/model"
)

// SQLiteStore implements Store on a private in-memory SQLite database.
// Nothing outlives Close.
type SQLiteStore struct {
	db  *sql.DB
	ids *ids.Generator
}

// NewSQLiteStore opens a fresh in-memory database.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, ids: ids.New(nil)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS menu_entries (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		name_key   TEXT NOT NULL UNIQUE,
		price      INTEGER NOT NULL CHECK (price >= 0),
		category   TEXT NOT NULL,
		available  INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_menu_entries_category ON menu_entries(category);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Add(ctx context.Context, p AddParams) (*model.MenuEntry, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	available := true
	if p.Available != nil {
		available = *p.Available
	}
	e := model.MenuEntry{
		ID:        s.ids.Next(),
		Name:      p.Name,
		Price:     p.Price,
		Category:  categoryOrDefault(p.Category),
		Available: available,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM menu_entries WHERE name_key = ?`, NameKey(p.Name)).Scan(&n); err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if n > 0 {
		return nil, fmt.Errorf("add %q: %w", p.Name, ErrDuplicateName)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO menu_entries (id, name, name_key, price, category, available, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, NameKey(e.Name), e.Price, e.Category, e.Available,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.MenuEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, price, category, available FROM menu_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) FindByName(ctx context.Context, name string) (*model.MenuEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, price, category, available FROM menu_entries WHERE name_key = ?`, NameKey(name))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.MenuEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, price, category, available FROM menu_entries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.MenuEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Update(ctx context.Context, id string, p UpdateParams) (*model.MenuEntry, error) {
	if p.Price != nil && *p.Price < 0 {
		return nil, fmt.Errorf("update %s: price must be >= 0", id)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if p.Price != nil {
		if _, err := tx.ExecContext(ctx, `UPDATE menu_entries SET price = ? WHERE id = ?`, *p.Price, id); err != nil {
			return nil, fmt.Errorf("update price: %w", err)
		}
	}
	if p.Available != nil {
		if _, err := tx.ExecContext(ctx, `UPDATE menu_entries SET available = ? WHERE id = ?`, *p.Available, id); err != nil {
			return nil, fmt.Errorf("update available: %w", err)
		}
	}

	e, err := scanEntry(tx.QueryRowContext(ctx,
		`SELECT id, name, price, category, available FROM menu_entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM menu_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (model.MenuEntry, error) {
	var e model.MenuEntry
	err := row.Scan(&e.ID, &e.Name, &e.Price, &e.Category, &e.Available)
	return e, err
}

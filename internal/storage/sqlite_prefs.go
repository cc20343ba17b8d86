package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLitePrefs struct {
	db *sql.DB
}

func NewSQLitePrefs(db *sql.DB) (*SQLitePrefs, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	return &SQLitePrefs{db: db}, nil
}

// OpenSQLite opens (or creates) the preference database at path and
// applies migrations.
func OpenSQLite(path string) (*SQLitePrefs, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	prefs, err := NewSQLitePrefs(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return prefs, nil
}

func (p *SQLitePrefs) Close() error {
	return p.db.Close()
}

func (p *SQLitePrefs) Counter(ctx context.Context, key string) (int, error) {
	row := p.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE key = ?`, key)
	var value int
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return value, nil
}

func (p *SQLitePrefs) PutCounter(ctx context.Context, key string, value int) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO counters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// AddCounter bumps the counter by delta in one statement and returns the
// new value. Absent keys start from zero.
func (p *SQLitePrefs) AddCounter(ctx context.Context, key string, delta int) (int, error) {
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO counters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = counters.value + excluded.value
		RETURNING value`,
		key, delta,
	)
	var value int
	if err := row.Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

func (p *SQLitePrefs) Text(ctx context.Context, key string) (string, error) {
	row := p.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (p *SQLitePrefs) PutText(ctx context.Context, key string, value string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (p *SQLitePrefs) DeleteText(ctx context.Context, key string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

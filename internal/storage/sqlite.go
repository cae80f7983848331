package storage

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

// memoryDSN is a private in-memory database; it lives exactly as long as
// the single pooled connection.
const memoryDSN = ":memory:"

// SQLite is a Store backed by an in-memory SQLite database. Row ids keep
// insertion order; positions are derived from that order on every call.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite() (*SQLite, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, err
	}
	// A second connection would open a second, empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 0
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLite) Append(text string) error {
	_, err := s.db.Exec(`INSERT INTO tasks (title, done) VALUES (?, 0);`, text)
	return err
}

func (s *SQLite) MarkDone(pos int) error {
	return s.atPosition(pos, ErrNotFound, func(tx *sql.Tx, id int64) error {
		_, err := tx.Exec(`UPDATE tasks SET done = 1 WHERE id = ?;`, id)
		return err
	})
}

func (s *SQLite) Remove(pos int) error {
	return s.atPosition(pos, ErrOutOfRange, func(tx *sql.Tx, id int64) error {
		_, err := tx.Exec(`DELETE FROM tasks WHERE id = ?;`, id)
		return err
	})
}

// atPosition resolves pos to a row id and runs fn in the same transaction.
// A missing row yields a PositionError wrapping missing.
func (s *SQLite) atPosition(pos int, missing error, fn func(tx *sql.Tx, id int64) error) error {
	if pos < 1 {
		return &PositionError{Position: pos, Err: missing}
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM tasks ORDER BY id LIMIT 1 OFFSET ?;`, pos-1).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return &PositionError{Position: pos, Err: missing}
	}
	if err != nil {
		return err
	}
	if err := fn(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) All() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT title, done FROM tasks ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var doneInt int
		if err := rows.Scan(&e.Text, &doneInt); err != nil {
			return nil, err
		}
		e.Done = doneInt == 1
		e.Position = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *SQLite) Done() ([]Entry, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	return filterDone(all, true), nil
}

func (s *SQLite) Pending() ([]Entry, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	return filterDone(all, false), nil
}

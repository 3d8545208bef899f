package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	jsonpatch "github.com/evanphx/json-patch"
	_ "modernc.org/sqlite"
)

// Sqlite stores all collections in a single SQLite database.
//
// Table:
//
//	records(seq, collection, id, doc)  UNIQUE (collection, id)
//
// seq is an autoincrement column and is never touched by replace or merge,
// so listing by seq preserves insertion order across updates.
type Sqlite struct {
	mutex sync.Mutex
	db    *sql.DB
}

func OpenSqlite(filename string) (*Sqlite, error) {

	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		doc TEXT NOT NULL,
		UNIQUE (collection, id)
	);`); err != nil {
		db.Close()
		return nil, err
	}

	return &Sqlite{db: db}, nil
}

func (s *Sqlite) List(collection string) ([]json.RawMessage, error) {

	rows, err := s.db.Query(`SELECT doc FROM records WHERE collection = ? ORDER BY seq`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []json.RawMessage{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		result = append(result, json.RawMessage(doc))
	}

	return result, rows.Err()
}

func (s *Sqlite) Get(collection, id string) (json.RawMessage, error) {

	var doc []byte
	err := s.db.QueryRow(`SELECT doc FROM records WHERE collection = ? AND id = ?`,
		collection, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return json.RawMessage(doc), nil
}

func (s *Sqlite) Insert(collection, id string, doc json.RawMessage) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, err := s.Get(collection, id); err == nil {
		return ErrExists
	} else if err != ErrNotFound {
		return err
	}

	_, err := s.db.Exec(`INSERT INTO records (collection, id, doc) VALUES (?, ?, ?)`,
		collection, id, string(doc))

	return err
}

func (s *Sqlite) Replace(collection, id string, doc json.RawMessage) (json.RawMessage, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result, err := s.db.Exec(`UPDATE records SET doc = ? WHERE collection = ? AND id = ?`,
		string(doc), collection, id)
	if err != nil {
		return nil, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return doc, nil
}

func (s *Sqlite) Merge(collection, id string, patch json.RawMessage) (json.RawMessage, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.Get(collection, id)
	if err != nil {
		return nil, err
	}

	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`UPDATE records SET doc = ? WHERE collection = ? AND id = ?`,
		string(merged), collection, id)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(merged), nil
}

func (s *Sqlite) Delete(collection, id string) (json.RawMessage, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.Get(collection, id)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *Sqlite) Close() error {
	return s.db.Close()
}

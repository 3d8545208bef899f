// Package store defines the storage contract behind the record API and its
// implementations. A store owns named collections of JSON documents keyed by
// a string id and keeps insertion order for listing.
package store

import (
	"encoding/json"
	"errors"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
)

// Storage is satisfied by the in-memory and the sqlite backends. "Not found"
// is the ErrNotFound sentinel, never a panic, so the API layer can map it to
// a 404 apart from genuine storage failures.
type Storage interface {
	// List returns every document of a collection in insertion order. An
	// unknown collection is just empty.
	List(collection string) ([]json.RawMessage, error)

	// Get returns a single document or ErrNotFound.
	Get(collection, id string) (json.RawMessage, error)

	// Insert stores a new document under id, ErrExists on duplicates.
	Insert(collection, id string, doc json.RawMessage) error

	// Replace substitutes the whole document, keeping its position in the
	// insertion order. ErrNotFound when id is absent.
	Replace(collection, id string, doc json.RawMessage) (json.RawMessage, error)

	// Merge applies an RFC 7386 merge patch on top of the stored document
	// and returns the result. ErrNotFound when id is absent.
	Merge(collection, id string, patch json.RawMessage) (json.RawMessage, error)

	// Delete removes a document and returns it, ErrNotFound when absent.
	Delete(collection, id string) (json.RawMessage, error)

	Close() error
}

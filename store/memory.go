package store

import (
	"encoding/json"
	"sync"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/btree"
)

type row struct {
	seq int64
	id  string
	doc json.RawMessage
}

func rowLess(a, b *row) bool {
	return a.seq < b.seq
}

type memoryCollection struct {
	byID map[string]*row
	rows *btree.BTreeG[*row] // ordered by insertion sequence
	seq  int64
}

// Memory keeps everything in process memory, lost on restart. Safe for
// concurrent use. Documents are never mutated in place, only swapped, so
// returned payloads can be handed out without copying.
type Memory struct {
	mutex       sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemory() *Memory {
	return &Memory{
		collections: map[string]*memoryCollection{},
	}
}

func (m *Memory) collection(name string) *memoryCollection {
	c, exists := m.collections[name]
	if !exists {
		c = &memoryCollection{
			byID: map[string]*row{},
			rows: btree.NewG[*row](8, rowLess),
		}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) List(collection string) ([]json.RawMessage, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := []json.RawMessage{}
	c, exists := m.collections[collection]
	if !exists {
		return result, nil
	}

	c.rows.Ascend(func(r *row) bool {
		result = append(result, r.doc)
		return true
	})

	return result, nil
}

func (m *Memory) Get(collection, id string) (json.RawMessage, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	c, exists := m.collections[collection]
	if !exists {
		return nil, ErrNotFound
	}
	r, exists := c.byID[id]
	if !exists {
		return nil, ErrNotFound
	}

	return r.doc, nil
}

func (m *Memory) Insert(collection, id string, doc json.RawMessage) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	c := m.collection(collection)
	if _, exists := c.byID[id]; exists {
		return ErrExists
	}

	c.seq++
	r := &row{seq: c.seq, id: id, doc: doc}
	c.byID[id] = r
	c.rows.ReplaceOrInsert(r)

	return nil
}

func (m *Memory) Replace(collection, id string, doc json.RawMessage) (json.RawMessage, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	r, err := m.row(collection, id)
	if err != nil {
		return nil, err
	}

	r.doc = doc

	return r.doc, nil
}

func (m *Memory) Merge(collection, id string, patch json.RawMessage) (json.RawMessage, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	r, err := m.row(collection, id)
	if err != nil {
		return nil, err
	}

	merged, err := jsonpatch.MergePatch(r.doc, patch)
	if err != nil {
		return nil, err
	}

	r.doc = merged

	return r.doc, nil
}

func (m *Memory) Delete(collection, id string) (json.RawMessage, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	c, exists := m.collections[collection]
	if !exists {
		return nil, ErrNotFound
	}
	r, exists := c.byID[id]
	if !exists {
		return nil, ErrNotFound
	}

	delete(c.byID, id)
	c.rows.Delete(r)

	return r.doc, nil
}

func (m *Memory) Close() error {
	return nil
}

// row must be called with the write lock held.
func (m *Memory) row(collection, id string) (*row, error) {
	c, exists := m.collections[collection]
	if !exists {
		return nil, ErrNotFound
	}
	r, exists := c.byID[id]
	if !exists {
		return nil, ErrNotFound
	}
	return r, nil
}

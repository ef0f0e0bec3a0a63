package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store used for local development and tests.
// Like Firestore, deleting a document leaves its sub-collections in place.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]map[string]string // collection -> id -> fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]map[string]string)}
}

// Put creates or replaces a document.
func (m *MemoryStore) Put(collection, id string, fields map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.docs[collection]
	if !ok {
		coll = make(map[string]map[string]string)
		m.docs[collection] = coll
	}
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	coll[id] = copied
}

// Exists reports whether the document is present.
func (m *MemoryStore) Exists(ref DocRef) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.docs[ref.Collection][ref.ID]
	return ok
}

// Count returns the number of documents directly inside collection.
func (m *MemoryStore) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs[collection])
}

func (m *MemoryStore) FindByField(ctx context.Context, collection, field, value string) ([]DocRef, error) {
	return m.list(ctx, collection, func(fields map[string]string) bool {
		v, ok := fields[field]
		return ok && v == value
	})
}

func (m *MemoryStore) ListDocuments(ctx context.Context, collection string) ([]DocRef, error) {
	return m.list(ctx, collection, func(map[string]string) bool { return true })
}

func (m *MemoryStore) list(ctx context.Context, collection string, match func(map[string]string) bool) ([]DocRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w: %w", collection, ErrUnavailable, err)
	}
	if !validCollection(collection) {
		return nil, fmt.Errorf("invalid collection path %q", collection)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var refs []DocRef
	for id, fields := range m.docs[collection] {
		if match(fields) {
			refs = append(refs, DocRef{Collection: collection, ID: id})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func (m *MemoryStore) Delete(ctx context.Context, ref DocRef) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete %s: %w: %w", ref.Path(), ErrUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.docs[ref.Collection]
	if !ok {
		return nil
	}
	delete(coll, ref.ID)
	if len(coll) == 0 {
		delete(m.docs, ref.Collection)
	}
	return nil
}

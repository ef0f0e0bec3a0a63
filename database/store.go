package database

import (
	"context"
	"errors"
	"strings"
)

// Error kinds returned by every Store implementation. Driver errors are
// wrapped so both the kind and the cause survive errors.Is / errors.As.
var (
	ErrUnavailable      = errors.New("document store unavailable")
	ErrPermissionDenied = errors.New("document store permission denied")
	ErrUnknown          = errors.New("document store failure")
)

// DocRef addresses one document. Collection is a slash-joined path such as
// "users" or "users/u1/notifications".
type DocRef struct {
	Collection string
	ID         string
}

// Path returns the full document path, e.g. "users/u1/notifications/n1".
func (r DocRef) Path() string {
	return r.Collection + "/" + r.ID
}

// Sub returns the path of a collection nested under this document.
func (r DocRef) Sub(name string) string {
	return r.Path() + "/" + name
}

// Store is the subset of a hierarchical document store the cleanup needs.
type Store interface {
	// FindByField returns every document in collection whose field equals value.
	FindByField(ctx context.Context, collection, field, value string) ([]DocRef, error)
	// ListDocuments returns every document directly inside collection.
	ListDocuments(ctx context.Context, collection string) ([]DocRef, error)
	// Delete removes a single document. Deleting a missing document is not an error.
	Delete(ctx context.Context, ref DocRef) error
}

// splitCollection returns the parent document path and leaf name of a
// collection path: "users/u1/notifications" -> ("users/u1", "notifications").
func splitCollection(collection string) (parent, name string) {
	i := strings.LastIndex(collection, "/")
	if i < 0 {
		return "", collection
	}
	return collection[:i], collection[i+1:]
}

// validCollection reports whether p names a collection (odd number of segments).
func validCollection(p string) bool {
	if p == "" {
		return false
	}
	segs := strings.Split(p, "/")
	for _, s := range segs {
		if s == "" {
			return false
		}
	}
	return len(segs)%2 == 1
}

package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Store on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an already constructed Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) FindByField(ctx context.Context, collection, field, value string) ([]DocRef, error) {
	if !validCollection(collection) {
		return nil, fmt.Errorf("invalid collection path %q", collection)
	}
	q := s.client.Collection(collection).Where(field, "==", value)
	refs, err := collectRefs(q.Documents(ctx))
	if err != nil {
		return nil, classifyFirestore(fmt.Sprintf("query %s where %s == %s", collection, field, value), err)
	}
	return refs, nil
}

func (s *FirestoreStore) ListDocuments(ctx context.Context, collection string) ([]DocRef, error) {
	if !validCollection(collection) {
		return nil, fmt.Errorf("invalid collection path %q", collection)
	}
	refs, err := collectRefs(s.client.Collection(collection).Documents(ctx))
	if err != nil {
		return nil, classifyFirestore("list "+collection, err)
	}
	return refs, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, ref DocRef) error {
	doc := s.client.Doc(ref.Path())
	if doc == nil {
		return fmt.Errorf("invalid document path %q", ref.Path())
	}
	if _, err := doc.Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return classifyFirestore("delete "+ref.Path(), err)
	}
	return nil
}

func collectRefs(it *firestore.DocumentIterator) ([]DocRef, error) {
	defer it.Stop()

	var refs []DocRef
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return refs, nil
		}
		if err != nil {
			return nil, err
		}
		refs = append(refs, DocRef{Collection: collectionPath(snap.Ref.Parent), ID: snap.Ref.ID})
	}
}

// collectionPath rebuilds the relative path of a collection reference,
// e.g. "users/u1/notifications".
func collectionPath(c *firestore.CollectionRef) string {
	if c.Parent == nil {
		return c.ID
	}
	return collectionPath(c.Parent.Parent) + "/" + c.Parent.ID + "/" + c.ID
}

// classifyFirestore maps a Firestore error to one of the store error kinds.
func classifyFirestore(op string, err error) error {
	var kind error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = ErrUnavailable
	default:
		switch status.Code(err) {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted, codes.ResourceExhausted:
			kind = ErrUnavailable
		case codes.PermissionDenied, codes.Unauthenticated:
			kind = ErrPermissionDenied
		default:
			kind = ErrUnknown
		}
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

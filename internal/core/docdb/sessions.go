// Package docdb provides the sessions collection interface.
package docdb

import (
	"context"

	"github.com/interviewly/interview-service/internal/domain/models"
)

// SessionStore is the narrow contract the session core requires of the
// document store. Identifiers are opaque strings; the store may use any
// native key type internally but must round-trip it losslessly.
type SessionStore interface {
	// Insert stores a new session document and returns its identifier.
	Insert(ctx context.Context, session *models.Session) (string, error)

	// FindByID retrieves a session by identifier. Returns (nil, nil) when
	// the identifier is malformed or no document matches; errors are
	// reserved for store failures.
	FindByID(ctx context.Context, id string) (*models.Session, error)

	// UpdateFields applies a dot-path field-level merge: each key names a
	// path into the nested document and only that leaf is replaced. Returns
	// the number of documents modified.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error)

	// AppendToArray appends a value to the array at the given dot path,
	// creating the array if absent. Returns the number of documents
	// modified.
	AppendToArray(ctx context.Context, id string, path string, value interface{}) (int64, error)

	// FindActive returns all sessions whose end time is unset.
	FindActive(ctx context.Context) ([]*models.Session, error)

	// DeleteMany removes sessions matching the filter. Maintenance and test
	// use only.
	DeleteMany(ctx context.Context, filter map[string]interface{}) (int64, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

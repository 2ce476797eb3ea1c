// Package store persists chart definitions for the HTTP service.
//
// Definitions are stored in their canonical JSON form (see [config.Marshal])
// and decoded again on every read, so a stored chart renders exactly like
// the same definition loaded from a file.
//
// Backends:
//   - [MemoryStore]: in-process map for development and tests
//   - [FileStore]: one JSON file per record under a directory
//   - [MongoStore]: a MongoDB collection for multi-instance deployments
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Record is a stored chart definition.
type Record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Type      string          `json:"type"`
	Body      json.RawMessage `json:"definition"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Definition decodes and validates the stored definition.
func (r *Record) Definition() (*config.Definition, error) {
	def, _, err := config.Parse(r.Body, config.FormatJSON)
	return def, err
}

// Store is the interface for chart definition backends.
type Store interface {
	// Create assigns a new id and stores def.
	Create(ctx context.Context, def *config.Definition) (*Record, error)

	// Get returns the record with the given id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// Update replaces the definition stored under id.
	Update(ctx context.Context, id string, def *config.Definition) (*Record, error)

	// Delete removes the record, or returns a NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// List returns all records, oldest first.
	List(ctx context.Context) ([]Record, error)

	Close() error
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}

// NotFound returns the error reported for a missing record.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "chart %q not found", id)
}

// newRecord validates def and encodes it for storage.
func newRecord(id string, def *config.Definition, now time.Time) (*Record, error) {
	if def == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "definition is required")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	body, err := config.Marshal(def)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode definition")
	}
	return &Record{
		ID:        id,
		Name:      def.Name,
		Type:      string(def.Chart.Type),
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

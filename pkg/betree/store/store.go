// Package store provides persistent storage for named filter expressions.
// Expressions are stored as source text and recompiled on load, so a store
// never depends on the in-memory tree layout.
package store

import (
	"errors"
	"time"
)

// Saved is one stored expression.
type Saved struct {
	ID        string
	Name      string
	Source    string
	CreatedAt time.Time
}

// Store persists filter expression source text.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores an expression under a name and returns its generated id.
	// Names are not unique; saving the same name twice creates two entries.
	Save(name, source string) (string, error)

	// Load retrieves an expression by id.
	// Returns ErrNotFound if the id doesn't exist.
	Load(id string) (Saved, error)

	// LoadByName retrieves the most recently saved expression with a name.
	// Returns ErrNotFound if no expression has the name.
	LoadByName(name string) (Saved, error)

	// List returns all stored expressions, oldest first.
	// Returns empty slice (not error) if the store is empty.
	List() ([]Saved, error)

	// Delete removes an expression by id.
	// Returns nil if the id doesn't exist.
	Delete(id string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates an expression doesn't exist.
	ErrNotFound = errors.New("expression not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("expression store closed")
)

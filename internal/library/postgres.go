package library

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/jobfit/internal/db"
	"github.com/jonathan/jobfit/internal/types"
)

// PostgresStore persists library items in PostgreSQL
type PostgresStore struct {
	db *db.DB
}

// NewPostgresStore wraps an open database. Call db.Migrate before first use.
func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

// Create inserts a new item
func (s *PostgresStore) Create(ctx context.Context, item types.LibraryItem) error {
	return translate(s.db.InsertLibraryItem(ctx, item))
}

// Get returns one item
func (s *PostgresStore) Get(ctx context.Context, id string) (types.LibraryItem, error) {
	item, err := s.db.GetLibraryItem(ctx, id)
	return item, translate(err)
}

// Update replaces an existing item
func (s *PostgresStore) Update(ctx context.Context, item types.LibraryItem) error {
	return translate(s.db.UpdateLibraryItem(ctx, item))
}

// Delete removes an item
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return translate(s.db.DeleteLibraryItem(ctx, id))
}

// List returns all items ordered by id
func (s *PostgresStore) List(ctx context.Context) ([]types.LibraryItem, error) {
	items, err := s.db.ListLibraryItems(ctx)
	return items, translate(err)
}

// RecordUsage bumps usage counters in a single statement
func (s *PostgresStore) RecordUsage(ctx context.Context, ids []string, at time.Time) error {
	return translate(s.db.IncrementUsage(ctx, ids, at))
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, db.ErrDuplicate):
		return ErrDuplicateID
	}
	return &Error{Message: "library store failure", Cause: err}
}

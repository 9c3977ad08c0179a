package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonathan/jobfit/internal/types"
)

// Row-level errors, translated by the library store
var (
	ErrNoRows    = errors.New("no rows")
	ErrDuplicate = errors.New("duplicate key")
)

const uniqueViolation = "23505"

const itemColumns = `id, statement, text, quality_score, usage_count, last_used, created_at, updated_at`

// InsertLibraryItem inserts a new library item
func (db *DB) InsertLibraryItem(ctx context.Context, item types.LibraryItem) error {
	stmt, err := json.Marshal(item.Statement)
	if err != nil {
		return fmt.Errorf("failed to marshal statement: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO library_items (id, statement, text, competency, company_stage, quality_score, usage_count, last_used, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, stmt, item.Text, item.Statement.Competency, string(item.Statement.CompanyStage),
		item.QualityScore, item.UsageCount, item.LastUsed, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert library item %s: %w", item.ID, err)
	}
	return nil
}

// GetLibraryItem retrieves one library item by id
func (db *DB) GetLibraryItem(ctx context.Context, id string) (types.LibraryItem, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM library_items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.LibraryItem{}, ErrNoRows
		}
		return types.LibraryItem{}, fmt.Errorf("failed to get library item %s: %w", id, err)
	}
	return item, nil
}

// UpdateLibraryItem replaces the statement-derived columns of an item
func (db *DB) UpdateLibraryItem(ctx context.Context, item types.LibraryItem) error {
	stmt, err := json.Marshal(item.Statement)
	if err != nil {
		return fmt.Errorf("failed to marshal statement: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE library_items
		 SET statement = $2, text = $3, competency = $4, company_stage = $5,
		     quality_score = $6, usage_count = $7, last_used = $8, updated_at = $9
		 WHERE id = $1`,
		item.ID, stmt, item.Text, item.Statement.Competency, string(item.Statement.CompanyStage),
		item.QualityScore, item.UsageCount, item.LastUsed, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update library item %s: %w", item.ID, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

// DeleteLibraryItem deletes one library item
func (db *DB) DeleteLibraryItem(ctx context.Context, id string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM library_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete library item %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

// ListLibraryItems retrieves all library items ordered by id
func (db *DB) ListLibraryItems(ctx context.Context) ([]types.LibraryItem, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+itemColumns+` FROM library_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list library items: %w", err)
	}
	defer rows.Close()

	var items []types.LibraryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan library item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list library items: %w", err)
	}
	return items, nil
}

// IncrementUsage bumps usage_count and stamps last_used for the given ids
func (db *DB) IncrementUsage(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE library_items SET usage_count = usage_count + 1, last_used = $2 WHERE id = ANY($1)`,
		ids, at,
	)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (types.LibraryItem, error) {
	var item types.LibraryItem
	var stmt []byte
	if err := row.Scan(&item.ID, &stmt, &item.Text, &item.QualityScore, &item.UsageCount,
		&item.LastUsed, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return types.LibraryItem{}, err
	}
	if err := json.Unmarshal(stmt, &item.Statement); err != nil {
		return types.LibraryItem{}, fmt.Errorf("failed to decode statement for %s: %w", item.ID, err)
	}
	return item, nil
}

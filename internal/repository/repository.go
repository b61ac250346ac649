// Package repository handles all interactions with the database.
//
// It contains the SQL for each entity and the helpers that run it on
// the shared pgx pool, abstracting SQL away from the service layer.
// Every failure comes back as a *sqlerr.OpError naming the operation;
// "not found" is never an error.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

// collectAll runs query and scans every row into T by column name.
// The result is never nil.
func collectAll[T any](ctx context.Context, db *database.Database, op, query string, args ...any) ([]T, error) {
	pool, err := db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}

	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}

	return items, nil
}

// collectOne returns the first row of query, or (nil, nil) without rows.
func collectOne[T any](ctx context.Context, db *database.Database, op, query string, args ...any) (*T, error) {
	pool, err := db.Pool(ctx)
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}

	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, sqlerr.Wrap(op, err)
	}

	return item, nil
}

// insertReturningID runs an INSERT ... RETURNING <id> statement.
func insertReturningID(ctx context.Context, db *database.Database, op, query string, args ...any) (int64, error) {
	pool, err := db.Pool(ctx)
	if err != nil {
		return 0, sqlerr.Wrap(op, err)
	}

	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	var id int64
	if err := pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, sqlerr.Wrap(op, err)
	}

	return id, nil
}

// execAffected runs an UPDATE or DELETE and reports whether any row matched.
func execAffected(ctx context.Context, db *database.Database, op, query string, args ...any) (bool, error) {
	pool, err := db.Pool(ctx)
	if err != nil {
		return false, sqlerr.Wrap(op, err)
	}

	ctx, cancel := db.WithQueryTimeout(ctx)
	defer cancel()

	tag, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return false, sqlerr.Wrap(op, err)
	}

	return tag.RowsAffected() > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere.
// Wildcards typed by the user match literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Package memrepo is an in-memory implementation of the repository
// contracts in package model.
//
// It follows the Postgres schema closely enough for service and
// handler tests: identities start at 1, lookups return copies, unique
// and foreign key constraints fail with the same SQLSTATE codes, and
// substring searches are case-insensitive.
package memrepo

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/repository"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

// Store holds every table behind one mutex so constraint checks see a
// consistent view across entities.
type Store struct {
	mu sync.Mutex

	// err, when set, is returned by every operation.
	err error

	users        table[model.User]
	companies    table[model.Company]
	jobPostings  table[model.JobPosting]
	applications table[model.Application]
	interviews   table[model.Interview]
}

func New() *Store {
	return &Store{
		users:        newTable[model.User](),
		companies:    newTable[model.Company](),
		jobPostings:  newTable[model.JobPosting](),
		applications: newTable[model.Application](),
		interviews:   newTable[model.Interview](),
	}
}

// Repositories exposes the store through the repository container.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:        &Users{s: s},
		Companies:    &Companies{s: s},
		JobPostings:  &JobPostings{s: s},
		Applications: &Applications{s: s},
		Interviews:   &Interviews{s: s},
	}
}

// FailWith makes every following operation fail with err wrapped as an
// *sqlerr.OpError. A nil err restores normal behaviour.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// failure returns the injected error for op. Callers hold s.mu.
func (s *Store) failure(op string) error {
	return sqlerr.Wrap(op, s.err)
}

type table[T any] struct {
	rows map[int64]T
	next int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]T)}
}

// nextID reserves the next identity, like a BIGSERIAL.
func (t *table[T]) nextID() int64 {
	t.next++
	return t.next
}

func (t *table[T]) has(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

// get returns a copy of the row, or nil.
func (t *table[T]) get(id int64) *T {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &v
}

// update replaces an existing row and reports whether it existed.
func (t *table[T]) update(id int64, v T) bool {
	if !t.has(id) {
		return false
	}
	t.rows[id] = v
	return true
}

func (t *table[T]) remove(id int64) bool {
	if !t.has(id) {
		return false
	}
	delete(t.rows, id)
	return true
}

// filter returns matching rows in identity order. The result is never nil.
func (t *table[T]) filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if v := t.rows[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) first(keep func(T) bool) *T {
	matches := t.filter(keep)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

func (t *table[T]) exists(keep func(T) bool) bool {
	for _, v := range t.rows {
		if keep(v) {
			return true
		}
	}
	return false
}

// contains is the ILIKE '%term%' match used by the Postgres repositories.
func contains(haystack, term string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(term))
}

func uniqueViolation(op, table, constraint string) error {
	return sqlerr.Wrap(op, &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		TableName:      table,
		ConstraintName: constraint,
	})
}

func foreignKeyViolation(op, table, constraint string) error {
	return sqlerr.Wrap(op, &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        "insert or update on table \"" + table + "\" violates foreign key constraint \"" + constraint + "\"",
		TableName:      table,
		ConstraintName: constraint,
	})
}

// stillReferenced mirrors ON DELETE RESTRICT. Postgres reports the
// referencing table, not the one being deleted from.
func stillReferenced(op, table, referencing, constraint string) error {
	return sqlerr.Wrap(op, &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        "update or delete on table \"" + table + "\" violates foreign key constraint \"" + constraint + "\" on table \"" + referencing + "\"",
		TableName:      referencing,
		ConstraintName: constraint,
	})
}

// sortByScheduledDate orders by date, keeping identity order within a day.
func sortByScheduledDate(items []model.Interview) {
	slices.SortStableFunc(items, func(a, b model.Interview) int {
		return a.ScheduledDate.Compare(b.ScheduledDate)
	})
}

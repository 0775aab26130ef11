// Package storage keeps the in-memory, insertion-ordered collections of
// passport applications and mirrors them to a Repository.
package storage

import (
	"cmp"
	"slices"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/samber/lo"
)

// Repository loads and saves a whole collection at once.
type Repository[T models.Record] interface {
	Load() ([]T, error)
	Save(records []T) error
}

// SortKey selects the primary ordering used by Sort.
type SortKey int

const (
	// ByName orders by applicant name, then by passport type.
	ByName SortKey = iota
	// ByType orders by passport type, then by applicant name.
	ByType
)

// Store is an ordered collection of records keyed by ID.
type Store[T models.Record] struct {
	records []T
	repo    Repository[T]
	// loadErr is set while the store's files could not be read.
	loadErr error
}

// New creates an empty store backed by repo.
func New[T models.Record](repo Repository[T]) *Store[T] {
	return &Store[T]{repo: repo}
}

// Load replaces the contents of the store with what the repository holds.
// After a failed load the store refuses to save, so the files it could not
// read are never overwritten with a partial collection.
func (s *Store[T]) Load() error {
	records, err := s.repo.Load()
	if err != nil {
		s.loadErr = ierr.WithHint(ierr.Mark(err, ierr.ErrStorage),
			"Passport files could not be read. Changes are disabled to protect them.")
		return s.loadErr
	}
	s.records = records
	s.loadErr = nil
	return nil
}

// Writable returns the load error that blocks saving, or nil.
func (s *Store[T]) Writable() error {
	return s.loadErr
}

// Save writes the whole store to the repository.
func (s *Store[T]) Save() error {
	if s.loadErr != nil {
		return s.loadErr
	}
	return s.repo.Save(s.records)
}

// Add appends rec at the end of the store.
func (s *Store[T]) Add(rec T) {
	s.records = append(s.records, rec)
}

// IndexOf returns the position of the record with the given ID, or -1.
func (s *Store[T]) IndexOf(id string) int {
	_, idx, ok := lo.FindIndexOf(s.records, func(r T) bool { return r.Key() == id })
	if !ok {
		return -1
	}
	return idx
}

// Get returns the record with the given ID.
func (s *Store[T]) Get(id string) (T, bool) {
	return lo.Find(s.records, func(r T) bool { return r.Key() == id })
}

// FindByName returns the first record whose applicant name equals name.
func (s *Store[T]) FindByName(name string) (T, bool) {
	return lo.Find(s.records, func(r T) bool { return r.Applicant() == name })
}

// Contains reports whether any record matches pred.
func (s *Store[T]) Contains(pred func(T) bool) bool {
	return lo.ContainsBy(s.records, pred)
}

// Delete removes the record with the given ID. The order of the remaining
// records is preserved.
func (s *Store[T]) Delete(id string) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.records = slices.Delete(s.records, idx, idx+1)
	return true
}

// Replace overwrites the record stored under id with rec, keeping its
// position. rec may carry a different ID.
func (s *Store[T]) Replace(id string, rec T) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.records[idx] = rec
	return true
}

// Sort orders the store in place. Records that compare equal keep their
// relative order.
func (s *Store[T]) Sort(key SortKey) {
	slices.SortStableFunc(s.records, func(a, b T) int {
		byName := cmp.Compare(a.Applicant(), b.Applicant())
		byType := cmp.Compare(a.Kind(), b.Kind())
		if key == ByType {
			return cmp.Or(byType, byName)
		}
		return cmp.Or(byName, byType)
	})
}

// Records returns a copy of the records in store order.
func (s *Store[T]) Records() []T {
	return slices.Clone(s.records)
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	return len(s.records)
}

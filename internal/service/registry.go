// Package service implements the passport registry: the business rules that
// span both application stores, the fields derived from the passport type,
// and persisting a store after each change.
package service

import (
	"strings"
	"time"

	"github.com/atinyakov/passportkeeper/internal/dates"
	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/atinyakov/passportkeeper/internal/storage"
	"github.com/atinyakov/passportkeeper/internal/validation"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Registry owns the new and old passport stores.
type Registry struct {
	newStore *storage.Store[models.NewPassport]
	oldStore *storage.Store[models.OldPassport]
	now      func() time.Time
	log      *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces the wall clock used for created dates and age checks.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry constructs a Registry over the given stores.
func NewRegistry(
	newStore *storage.Store[models.NewPassport],
	oldStore *storage.Store[models.OldPassport],
	log *zap.Logger,
	opts ...Option,
) *Registry {
	r := &Registry{newStore: newStore, oldStore: oldStore, now: time.Now, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the registry's current time.
func (r *Registry) Now() time.Time {
	return r.now()
}

// Load reads both stores from disk. Each store is loaded on its own; a
// store that fails stays read-only while the other remains usable.
func (r *Registry) Load() error {
	var errs error
	if err := r.newStore.Load(); err != nil {
		r.log.Error("cannot load new passports", zap.Error(err))
		errs = multierr.Append(errs, ierr.Wrap(err, "load new passports"))
	}
	if err := r.oldStore.Load(); err != nil {
		r.log.Error("cannot load old passports", zap.Error(err))
		errs = multierr.Append(errs, ierr.Wrap(err, "load old passports"))
	}
	r.log.Info("passports loaded",
		zap.Int("new", r.newStore.Len()), zap.Int("old", r.oldStore.Len()))
	return errs
}

// IsUniqueID reports whether id is unused by every application in either
// store, ignoring the application currently stored under excludeID.
func (r *Registry) IsUniqueID(id, excludeID string) bool {
	taken := func(key string) bool { return key == id && key != excludeID }
	if r.newStore.Contains(func(p models.NewPassport) bool { return taken(p.ID) }) {
		return false
	}
	return !r.oldStore.Contains(func(p models.OldPassport) bool { return taken(p.ID) })
}

// IsUniquePassportNumber reports whether number is unused by the old
// applications, ignoring the application stored under excludeID.
func (r *Registry) IsUniquePassportNumber(number, excludeID string) bool {
	return !r.oldStore.Contains(func(p models.OldPassport) bool {
		return p.PassportNumber == number && p.ID != excludeID
	})
}

// stamp fills the fields derived from the passport type and today's date.
func (r *Registry) stamp(t models.PassType) (created, appointment, payment string) {
	created = dates.CurrentDate(r.now())
	return created, dates.Appointment(created, t.IsUrgent()), t.Payment()
}

// checkApplicant applies the rules shared by new and old applications.
func (r *Registry) checkApplicant(id, excludeID, dob, paymentStatus string) error {
	if !validation.IsValidDate(dob) {
		return ierr.WithHint(ierr.Mark(ierr.Newf("invalid date of birth %q", dob), ierr.ErrValidation),
			"Invalid date format. Please use YYYY-MM-DD.")
	}
	if !validation.IsOver18(dob, r.now()) {
		return ierr.WithHint(ierr.Mark(ierr.Newf("applicant born %s is under 18", dob), ierr.ErrRejected),
			"Applicant must be at least 18 years old.")
	}
	if !r.IsUniqueID(id, excludeID) {
		return ierr.WithHint(ierr.Mark(ierr.Newf("id %s already exists", id), ierr.ErrAlreadyExists),
			"ID already exists. Please use a unique ID.")
	}
	if paymentStatus != models.PaymentConfirmed {
		return ierr.WithHint(ierr.Mark(ierr.New("payment not confirmed"), ierr.ErrRejected),
			"Payment not confirmed. Passport application cancelled.")
	}
	return nil
}

// notFound builds the error for a missing application; label is "New" or "Old".
func notFound(label, id string) error {
	return ierr.WithHint(
		ierr.Mark(ierr.Newf("%s passport %s not found", strings.ToLower(label), id), ierr.ErrNotFound),
		label+" passport ID not found.",
	)
}

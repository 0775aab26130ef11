package service

import (
	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/atinyakov/passportkeeper/internal/storage"
	"github.com/atinyakov/passportkeeper/internal/validation"
	"go.uber.org/zap"
)

func (r *Registry) prepareOld(app models.OldPassport, excludeID string) (models.OldPassport, error) {
	if err := r.checkApplicant(app.ID, excludeID, app.DOB, app.PaymentStatus); err != nil {
		return models.OldPassport{}, err
	}
	if !r.IsUniquePassportNumber(app.PassportNumber, excludeID) {
		return models.OldPassport{}, ierr.WithHint(
			ierr.Mark(ierr.Newf("passport number %s already exists", app.PassportNumber), ierr.ErrAlreadyExists),
			"Passport number already exists. Please use a unique passport number.")
	}
	app.CreatedDate, app.AppointmentDate, app.Payment = r.stamp(app.PassType)
	if err := validation.Struct(app); err != nil {
		return models.OldPassport{}, err
	}
	// valid YYYY-MM-DD strings order lexically
	if app.ExpiredDate < app.IssueDate {
		return models.OldPassport{}, ierr.WithHint(
			ierr.Mark(ierr.Newf("expiry %s precedes issue %s", app.ExpiredDate, app.IssueDate), ierr.ErrValidation),
			"Expiry date cannot be before the issue date.")
	}
	return app, nil
}

func (r *Registry) saveOld() error {
	if err := r.oldStore.Save(); err != nil {
		r.log.Error("failed to save old passports", zap.Error(err))
		return err
	}
	return nil
}

// CreateOld stamps app with today's date, its appointment date and fee,
// appends it to the old passport store and rewrites the store's files.
func (r *Registry) CreateOld(app models.OldPassport) (models.OldPassport, error) {
	if err := r.oldStore.Writable(); err != nil {
		return models.OldPassport{}, err
	}
	app, err := r.prepareOld(app, "")
	if err != nil {
		return models.OldPassport{}, err
	}
	r.oldStore.Add(app)
	r.log.Info("old passport created", zap.String("id", app.ID), zap.String("type", string(app.PassType)))
	return app, r.saveOld()
}

// UpdateOld overwrites every field of the application stored under id with
// app, keeping its position in the store.
func (r *Registry) UpdateOld(id string, app models.OldPassport) (models.OldPassport, error) {
	if err := r.oldStore.Writable(); err != nil {
		return models.OldPassport{}, err
	}
	if _, ok := r.oldStore.Get(id); !ok {
		return models.OldPassport{}, notFound("Old", id)
	}
	app, err := r.prepareOld(app, id)
	if err != nil {
		return models.OldPassport{}, err
	}
	r.oldStore.Replace(id, app)
	r.log.Info("old passport updated", zap.String("id", id), zap.String("new_id", app.ID))
	return app, r.saveOld()
}

// DeleteOld removes the application stored under id.
func (r *Registry) DeleteOld(id string) error {
	if err := r.oldStore.Writable(); err != nil {
		return err
	}
	if !r.oldStore.Delete(id) {
		return notFound("Old", id)
	}
	r.log.Info("old passport deleted", zap.String("id", id))
	return r.saveOld()
}

// FindOldByID returns the old application stored under id.
func (r *Registry) FindOldByID(id string) (models.OldPassport, error) {
	p, ok := r.oldStore.Get(id)
	if !ok {
		return models.OldPassport{}, notFound("Old", id)
	}
	return p, nil
}

// FindOldByName returns the first old application whose name equals name.
func (r *Registry) FindOldByName(name string) (models.OldPassport, error) {
	p, ok := r.oldStore.FindByName(name)
	if !ok {
		return models.OldPassport{}, ierr.WithHint(
			ierr.Mark(ierr.Newf("old passport for %q not found", name), ierr.ErrNotFound),
			"Old passport with that name not found.")
	}
	return p, nil
}

// SortOld orders the old applications and rewrites their files.
func (r *Registry) SortOld(key storage.SortKey) error {
	if err := r.oldStore.Writable(); err != nil {
		return err
	}
	r.oldStore.Sort(key)
	return r.saveOld()
}

// OldPassports returns the old applications in store order.
func (r *Registry) OldPassports() []models.OldPassport {
	return r.oldStore.Records()
}

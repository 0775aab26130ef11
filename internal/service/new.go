package service

import (
	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/atinyakov/passportkeeper/internal/storage"
	"github.com/atinyakov/passportkeeper/internal/validation"
	"go.uber.org/zap"
)

// prepareNew derives the dated fields of app and checks it against every
// rule. excludeID names the application being replaced, if any.
func (r *Registry) prepareNew(app models.NewPassport, excludeID string) (models.NewPassport, error) {
	if err := r.checkApplicant(app.ID, excludeID, app.DOB, app.PaymentStatus); err != nil {
		return models.NewPassport{}, err
	}
	app.CreatedDate, app.AppointmentDate, app.Payment = r.stamp(app.PassType)
	if err := validation.Struct(app); err != nil {
		return models.NewPassport{}, err
	}
	return app, nil
}

func (r *Registry) saveNew() error {
	if err := r.newStore.Save(); err != nil {
		r.log.Error("failed to save new passports", zap.Error(err))
		return err
	}
	return nil
}

// CreateNew stamps app with today's date, its appointment date and fee,
// appends it to the new passport store and rewrites the store's files.
func (r *Registry) CreateNew(app models.NewPassport) (models.NewPassport, error) {
	if err := r.newStore.Writable(); err != nil {
		return models.NewPassport{}, err
	}
	app, err := r.prepareNew(app, "")
	if err != nil {
		return models.NewPassport{}, err
	}
	r.newStore.Add(app)
	r.log.Info("new passport created", zap.String("id", app.ID), zap.String("type", string(app.PassType)))
	return app, r.saveNew()
}

// UpdateNew overwrites every field of the application stored under id with
// app, keeping its position in the store.
func (r *Registry) UpdateNew(id string, app models.NewPassport) (models.NewPassport, error) {
	if err := r.newStore.Writable(); err != nil {
		return models.NewPassport{}, err
	}
	if _, ok := r.newStore.Get(id); !ok {
		return models.NewPassport{}, notFound("New", id)
	}
	app, err := r.prepareNew(app, id)
	if err != nil {
		return models.NewPassport{}, err
	}
	r.newStore.Replace(id, app)
	r.log.Info("new passport updated", zap.String("id", id), zap.String("new_id", app.ID))
	return app, r.saveNew()
}

// DeleteNew removes the application stored under id.
func (r *Registry) DeleteNew(id string) error {
	if err := r.newStore.Writable(); err != nil {
		return err
	}
	if !r.newStore.Delete(id) {
		return notFound("New", id)
	}
	r.log.Info("new passport deleted", zap.String("id", id))
	return r.saveNew()
}

// FindNewByID returns the new application stored under id.
func (r *Registry) FindNewByID(id string) (models.NewPassport, error) {
	p, ok := r.newStore.Get(id)
	if !ok {
		return models.NewPassport{}, notFound("New", id)
	}
	return p, nil
}

// FindNewByName returns the first new application whose name equals name.
func (r *Registry) FindNewByName(name string) (models.NewPassport, error) {
	p, ok := r.newStore.FindByName(name)
	if !ok {
		return models.NewPassport{}, ierr.WithHint(
			ierr.Mark(ierr.Newf("new passport for %q not found", name), ierr.ErrNotFound),
			"New passport with that name not found.")
	}
	return p, nil
}

// SortNew orders the new applications and rewrites their files.
func (r *Registry) SortNew(key storage.SortKey) error {
	if err := r.newStore.Writable(); err != nil {
		return err
	}
	r.newStore.Sort(key)
	return r.saveNew()
}

// NewPassports returns the new applications in store order.
func (r *Registry) NewPassports() []models.NewPassport {
	return r.newStore.Records()
}

// Package validation provides the field-level checks used while prompting
// for passport applications, and struct-level validation of complete
// records before they are accepted into a store.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	datePattern         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	lettersPattern      = regexp.MustCompile(`^[a-zA-Z ]+$`)
	numbersPattern      = regexp.MustCompile(`^[0-9]+$`)
)

// splitDate reads the numeric parts of a YYYY-MM-DD string.
func splitDate(date string) (year, month, day int, ok bool) {
	if !datePattern.MatchString(date) {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(date, "%4d-%2d-%2d", &year, &month, &day); err != nil {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// IsValidDate reports whether date has the form YYYY-MM-DD with a month in
// 1..12 and a day in 1..31. The day is not checked against the month.
func IsValidDate(date string) bool {
	_, month, day, ok := splitDate(date)
	if !ok {
		return false
	}
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// IsOver18 reports whether someone born on dob is at least 18 years old on
// now's local date. A malformed dob is never over 18.
func IsOver18(dob string, now time.Time) bool {
	birthYear, birthMonth, birthDay, ok := splitDate(dob)
	if !ok {
		return false
	}
	now = now.Local()
	currYear, currMonth, currDay := now.Year(), int(now.Month()), now.Day()

	age := currYear - birthYear
	if currMonth < birthMonth || (currMonth == birthMonth && currDay < birthDay) {
		age--
	}
	return age >= 18
}

// IsAlphanumeric reports whether s is non-empty and made of ASCII letters and digits.
func IsAlphanumeric(s string) bool {
	return alphanumericPattern.MatchString(s)
}

// IsLettersOnly reports whether s is non-empty and made of ASCII letters and spaces.
func IsLettersOnly(s string) bool {
	return lettersPattern.MatchString(s)
}

// IsNumbersOnly reports whether s is non-empty and made of ASCII digits.
func IsNumbersOnly(s string) bool {
	return numbersPattern.MatchString(s)
}

// WithinLength reports whether s has between 1 and max characters.
func WithinLength(s string, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= max
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("letters", func(fl validator.FieldLevel) bool {
		return IsLettersOnly(fl.Field().String())
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return IsNumbersOnly(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsValidDate(fl.Field().String())
	})
	// amounts are validated through their string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(models.Money); ok {
			return m.String()
		}
		return nil
	}, models.Money{})
	_ = v.RegisterValidation("decimalgte0", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	return v
}

// Struct validates a record against its `validate` tags. Failures are marked
// ErrValidation and carry a hint naming each offending field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !ierr.As(err, &fieldErrs) {
		return ierr.Mark(ierr.Wrap(err, "validate record"), ierr.ErrValidation)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), message(fe)))
	}
	hint := "Invalid " + strings.Join(msgs, "; ")
	return ierr.WithHint(ierr.Mark(ierr.Wrap(err, "validate record"), ierr.ErrValidation), hint)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "too long (max " + fe.Param() + ")"
	case "alphanum":
		return "must contain only letters and numbers"
	case "letters":
		return "must contain only letters and spaces"
	case "digits":
		return "must contain only numbers"
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of " + fe.Param()
	case "eq":
		return "must be " + fe.Param()
	case "decimalgte0":
		return "must not be negative"
	default:
		return "invalid value"
	}
}

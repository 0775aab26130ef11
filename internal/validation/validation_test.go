package validation

import (
	"testing"
	"time"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2000-01-15", true},
		{"2024-02-31", true}, // day is not checked against the month
		{"2024-13-01", false},
		{"2024-00-10", false},
		{"2024-05-00", false},
		{"2024-05-32", false},
		{"2024-5-1", false},
		{"20240501", false},
		{"2024-05-01x", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidDate(tt.date))
		})
	}
}

func TestIsOver18(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		dob  string
		want bool
	}{
		{"exactly 18 today", "2006-06-15", true},
		{"one day younger", "2006-06-16", false},
		{"birthday later this year", "2006-07-01", false},
		{"well over 18", "1980-01-01", true},
		{"child", "2015-03-03", false},
		{"malformed", "15/06/2006", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOver18(tt.dob, now))
		})
	}
}

func TestCharacterClasses(t *testing.T) {
	assert.True(t, IsAlphanumeric("A1b2"))
	assert.False(t, IsAlphanumeric("A1 b2"))
	assert.False(t, IsAlphanumeric(""))

	assert.True(t, IsLettersOnly("John Doe"))
	assert.False(t, IsLettersOnly("John3"))
	assert.False(t, IsLettersOnly(""))

	assert.True(t, IsNumbersOnly("0123456789"))
	assert.False(t, IsNumbersOnly("12-34"))
	assert.False(t, IsNumbersOnly(""))
}

func TestWithinLength(t *testing.T) {
	assert.True(t, WithinLength("abc", 3))
	assert.False(t, WithinLength("abcd", 3))
	assert.False(t, WithinLength("", 3))
}

type sample struct {
	ID      string       `validate:"required,max=10,alphanum"`
	Name    string       `validate:"required,max=25,letters"`
	Phone   string       `validate:"required,max=12,digits"`
	DOB     string       `validate:"isodate"`
	Status  string       `validate:"eq=Yes"`
	Balance models.Money `validate:"decimalgte0"`
}

func TestStruct(t *testing.T) {
	valid := sample{
		ID:      "A1",
		Name:    "John Doe",
		Phone:   "1234567890",
		DOB:     "1990-04-04",
		Status:  "Yes",
		Balance: models.NewMoney(decimal.RequireFromString("10.50")),
	}
	require.NoError(t, Struct(valid))

	bad := valid
	bad.Name = "John, Doe"
	bad.Balance = models.NewMoney(decimal.NewFromInt(-1))
	err := Struct(bad)
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.ErrValidation))

	hint := ierr.Hint(err)
	assert.Contains(t, hint, "Name: must contain only letters and spaces")
	assert.Contains(t, hint, "Balance: must not be negative")
}

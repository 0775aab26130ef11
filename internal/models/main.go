// Package models defines the passport application records and their
// mapping to CSV columns.
package models

import (
	"strings"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/shopspring/decimal"
)

// PassType identifies the sub-type of an application. It also decides which
// CSV file a record is stored in.
type PassType string

const (
	// Regular is a new passport processed within a month.
	Regular PassType = "Regular"
	// Urgent is a new passport processed within two days.
	Urgent PassType = "Urgent"
	// ExpiredRegular is a renewal of an expired passport, regular processing.
	ExpiredRegular PassType = "ExpiredRegular"
	// ExpiredUrgent is a renewal of an expired passport, urgent processing.
	ExpiredUrgent PassType = "ExpiredUrgent"
)

const (
	// RegularPayment is the fee for regular processing.
	RegularPayment = "5000"
	// UrgentPayment is the fee for urgent processing.
	UrgentPayment = "25000"
	// PaymentConfirmed is the only payment status accepted for storage.
	PaymentConfirmed = "Yes"
)

// IsUrgent reports whether t uses urgent processing.
func (t PassType) IsUrgent() bool {
	return t == Urgent || t == ExpiredUrgent
}

// Payment returns the fixed fee for t.
func (t PassType) Payment() string {
	if t.IsUrgent() {
		return UrgentPayment
	}
	return RegularPayment
}

// Record is implemented by both application types so that stores and
// repositories can handle them uniformly.
type Record interface {
	// Key returns the application ID.
	Key() string
	// Applicant returns the applicant's name.
	Applicant() string
	// Kind returns the application sub-type.
	Kind() PassType
}

// Money is an amount of account balance. It is written to CSV with exactly
// two decimal places.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// ParseMoney reads a decimal amount such as "1500" or "99.95".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, ierr.Mark(ierr.Wrapf(err, "parse amount %q", s), ierr.ErrValidation)
	}
	return Money{Decimal: d}, nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (m Money) MarshalCSV() (string, error) {
	return m.StringFixed(2), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (m *Money) UnmarshalCSV(s string) error {
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// NewPassport is an application for a first passport. Field order matches
// the columns of regular4.csv and urgent4.csv.
type NewPassport struct {
	// PassType is Regular or Urgent.
	PassType PassType `csv:"PassType" validate:"oneof=Regular Urgent"`
	// ID is unique across new and old applications.
	ID string `csv:"ID" validate:"required,max=10,alphanum"`
	// Name is the applicant's full name.
	Name string `csv:"Name" validate:"required,max=25,letters"`
	// DOB is the applicant's date of birth (YYYY-MM-DD).
	DOB string `csv:"DOB" validate:"required,isodate"`
	// Nationality of the applicant.
	Nationality string `csv:"Nationality" validate:"required,max=15,letters"`
	// PhoneNumber holds digits only.
	PhoneNumber string `csv:"PhoneNumber" validate:"required,max=12,digits"`
	// CreatedDate is the day the application was taken.
	CreatedDate string `csv:"CreatedDate" validate:"required,isodate"`
	// AppointmentDate is derived from CreatedDate and PassType.
	AppointmentDate string `csv:"AppointmentDate" validate:"required"`
	// Payment is the fee for PassType.
	Payment string `csv:"Payment" validate:"oneof=5000 25000"`
	// PaymentStatus must be "Yes" for the record to be stored.
	PaymentStatus string `csv:"PaymentStatus" validate:"eq=Yes"`
}

// NewPassportHeader is the header row of regular4.csv and urgent4.csv.
var NewPassportHeader = []string{
	"PassType", "ID", "Name", "DOB", "Nationality", "PhoneNumber",
	"CreatedDate", "AppointmentDate", "Payment", "PaymentStatus",
}

func (p NewPassport) Key() string       { return p.ID }
func (p NewPassport) Applicant() string { return p.Name }
func (p NewPassport) Kind() PassType    { return p.PassType }

// OldPassport is an application to replace an expired passport. Field order
// matches the columns of expired_regular4.csv and expired_urgent4.csv.
type OldPassport struct {
	// PassType is ExpiredRegular or ExpiredUrgent.
	PassType PassType `csv:"PassType" validate:"oneof=ExpiredRegular ExpiredUrgent"`
	// ID is unique across new and old applications.
	ID string `csv:"ID" validate:"required,max=10,alphanum"`
	// Name is the applicant's full name.
	Name string `csv:"Name" validate:"required,max=25,letters"`
	// DOB is the applicant's date of birth (YYYY-MM-DD).
	DOB string `csv:"DOB" validate:"required,isodate"`
	// IssueDate of the expired passport.
	IssueDate string `csv:"IssueDate" validate:"required,isodate"`
	// ExpiredDate of the expired passport.
	ExpiredDate string `csv:"ExpiredDate" validate:"required,isodate"`
	// PassportNumber of the expired passport, unique among old applications.
	PassportNumber string `csv:"PassportNumber" validate:"required,max=10,alphanum"`
	// AccountNumber the fee is paid from.
	AccountNumber string `csv:"AccountNumber" validate:"required,max=16,digits"`
	// Balance of the account.
	Balance Money `csv:"Balance" validate:"decimalgte0"`
	// CreatedDate is the day the application was taken.
	CreatedDate string `csv:"CreatedDate" validate:"required,isodate"`
	// AppointmentDate is derived from CreatedDate and PassType.
	AppointmentDate string `csv:"AppointmentDate" validate:"required"`
	// Payment is the fee for PassType.
	Payment string `csv:"Payment" validate:"oneof=5000 25000"`
	// PaymentStatus must be "Yes" for the record to be stored.
	PaymentStatus string `csv:"PaymentStatus" validate:"eq=Yes"`
}

// OldPassportHeader is the header row of expired_regular4.csv and expired_urgent4.csv.
var OldPassportHeader = []string{
	"PassType", "ID", "Name", "DOB", "IssueDate", "ExpiredDate", "PassportNumber",
	"AccountNumber", "Balance", "CreatedDate", "AppointmentDate", "Payment", "PaymentStatus",
}

func (p OldPassport) Key() string       { return p.ID }
func (p OldPassport) Applicant() string { return p.Name }
func (p OldPassport) Kind() PassType    { return p.PassType }

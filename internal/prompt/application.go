package prompt

import (
	"fmt"

	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/atinyakov/passportkeeper/internal/validation"
)

const (
	maxIDLen             = 10
	maxNameLen           = 25
	maxNationalityLen    = 15
	maxPhoneLen          = 12
	maxPassportNumberLen = 10
	maxAccountNumberLen  = 16
)

// passType asks for 1 or 2 and maps it to regular or urgent. Any other
// answer aborts the application.
func (p *Prompter) passType(regular, urgent models.PassType) (models.PassType, error) {
	choice, err := p.Choice("Select passport type (1 for Regular, 2 for Urgent): ")
	if err != nil {
		return "", err
	}
	switch choice {
	case 1:
		return regular, nil
	case 2:
		return urgent, nil
	}
	return "", rejected("Invalid passport type. Returning to main menu.")
}

func (p *Prompter) id(reg Registry, excludeID string) (string, error) {
	return p.Field(fmt.Sprintf("Enter ID (max %d alphanumeric characters): ", maxIDLen), func(s string) string {
		switch {
		case !validation.WithinLength(s, maxIDLen) || !validation.IsAlphanumeric(s):
			return fmt.Sprintf("Invalid ID. Use 1-%d letters or digits.", maxIDLen)
		case !reg.IsUniqueID(s, excludeID):
			return "ID already exists. Please enter a unique ID."
		}
		return ""
	})
}

func (p *Prompter) letters(label string, max int) (string, error) {
	return p.Field(fmt.Sprintf("%s (max %d letters): ", label, max), func(s string) string {
		if !validation.WithinLength(s, max) || !validation.IsLettersOnly(s) {
			return fmt.Sprintf("Invalid input. Use 1-%d letters and spaces only.", max)
		}
		return ""
	})
}

func (p *Prompter) digits(label string, max int) (string, error) {
	return p.Field(fmt.Sprintf("%s (max %d digits): ", label, max), func(s string) string {
		if !validation.WithinLength(s, max) || !validation.IsNumbersOnly(s) {
			return fmt.Sprintf("Invalid input. Use 1-%d digits only.", max)
		}
		return ""
	})
}

func (p *Prompter) date(label string) (string, error) {
	return p.Field(label+" (YYYY-MM-DD): ", func(s string) string {
		if !validation.IsValidDate(s) {
			return "Invalid date format. Please use YYYY-MM-DD."
		}
		return ""
	})
}

// dob asks for a date of birth. An applicant under 18 aborts the application.
func (p *Prompter) dob(reg Registry) (string, error) {
	dob, err := p.date("Enter Date of Birth")
	if err != nil {
		return "", err
	}
	if !validation.IsOver18(dob, reg.Now()) {
		return "", rejected("Applicant must be at least 18 years old.")
	}
	return dob, nil
}

// confirmPayment shows the fee for t and requires the answer "Yes".
func (p *Prompter) confirmPayment(t models.PassType) (string, error) {
	answer, err := p.Line(fmt.Sprintf("Payment amount: %s. Confirm payment (Yes/No): ", t.Payment()))
	if err != nil {
		return "", err
	}
	if answer != models.PaymentConfirmed {
		return "", rejected("Payment not confirmed. Passport application cancelled.")
	}
	return answer, nil
}

// NewPassport asks for every user-supplied field of a new passport
// application. excludeID is the ID of the application being updated, which
// may be kept; it is empty when creating.
func (p *Prompter) NewPassport(reg Registry, excludeID string) (models.NewPassport, error) {
	var app models.NewPassport
	var err error

	if app.PassType, err = p.passType(models.Regular, models.Urgent); err != nil {
		return models.NewPassport{}, err
	}
	if app.ID, err = p.id(reg, excludeID); err != nil {
		return models.NewPassport{}, err
	}
	if app.Name, err = p.letters("Enter Name", maxNameLen); err != nil {
		return models.NewPassport{}, err
	}
	if app.DOB, err = p.dob(reg); err != nil {
		return models.NewPassport{}, err
	}
	if app.Nationality, err = p.letters("Enter Nationality", maxNationalityLen); err != nil {
		return models.NewPassport{}, err
	}
	if app.PhoneNumber, err = p.digits("Enter Phone Number", maxPhoneLen); err != nil {
		return models.NewPassport{}, err
	}
	if app.PaymentStatus, err = p.confirmPayment(app.PassType); err != nil {
		return models.NewPassport{}, err
	}
	return app, nil
}

// OldPassport asks for every user-supplied field of an expired passport
// application. excludeID is the ID of the application being updated.
func (p *Prompter) OldPassport(reg Registry, excludeID string) (models.OldPassport, error) {
	var app models.OldPassport
	var err error

	if app.PassType, err = p.passType(models.ExpiredRegular, models.ExpiredUrgent); err != nil {
		return models.OldPassport{}, err
	}
	if app.ID, err = p.id(reg, excludeID); err != nil {
		return models.OldPassport{}, err
	}
	if app.Name, err = p.letters("Enter Name", maxNameLen); err != nil {
		return models.OldPassport{}, err
	}
	if app.DOB, err = p.dob(reg); err != nil {
		return models.OldPassport{}, err
	}
	if app.IssueDate, err = p.date("Enter Issue Date"); err != nil {
		return models.OldPassport{}, err
	}
	app.ExpiredDate, err = p.Field("Enter Expiry Date (YYYY-MM-DD): ", func(s string) string {
		switch {
		case !validation.IsValidDate(s):
			return "Invalid date format. Please use YYYY-MM-DD."
		case s < app.IssueDate:
			return "Expiry date cannot be before the issue date."
		}
		return ""
	})
	if err != nil {
		return models.OldPassport{}, err
	}
	app.PassportNumber, err = p.Field(
		fmt.Sprintf("Enter Passport Number (max %d alphanumeric characters): ", maxPassportNumberLen),
		func(s string) string {
			switch {
			case !validation.WithinLength(s, maxPassportNumberLen) || !validation.IsAlphanumeric(s):
				return fmt.Sprintf("Invalid passport number. Use 1-%d letters or digits.", maxPassportNumberLen)
			case !reg.IsUniquePassportNumber(s, excludeID):
				return "Passport number already exists. Please enter a unique passport number."
			}
			return ""
		})
	if err != nil {
		return models.OldPassport{}, err
	}
	if app.AccountNumber, err = p.digits("Enter Account Number", maxAccountNumberLen); err != nil {
		return models.OldPassport{}, err
	}
	_, err = p.Field("Enter Account Balance: ", func(s string) string {
		m, err := models.ParseMoney(s)
		if err != nil || m.IsNegative() {
			return "Invalid balance. Please enter a non-negative amount."
		}
		app.Balance = m
		return ""
	})
	if err != nil {
		return models.OldPassport{}, err
	}
	if app.PaymentStatus, err = p.confirmPayment(app.PassType); err != nil {
		return models.OldPassport{}, err
	}
	return app, nil
}

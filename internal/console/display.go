package console

import (
	"fmt"
	"io"

	"github.com/atinyakov/passportkeeper/internal/models"
)

const separator = "--------------------------------"

func printNew(w io.Writer, p models.NewPassport) {
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Passport Type: %s\n", p.PassType)
	fmt.Fprintf(w, "ID: %s\n", p.ID)
	fmt.Fprintf(w, "Name: %s\n", p.Name)
	fmt.Fprintf(w, "DOB: %s\n", p.DOB)
	fmt.Fprintf(w, "Nationality: %s\n", p.Nationality)
	fmt.Fprintf(w, "Phone Number: %s\n", p.PhoneNumber)
	fmt.Fprintf(w, "Created Date: %s\n", p.CreatedDate)
	fmt.Fprintf(w, "Appointment Date: %s\n", p.AppointmentDate)
	fmt.Fprintf(w, "Payment: %s\n", p.Payment)
	fmt.Fprintf(w, "Payment Status: %s\n", p.PaymentStatus)
}

// displayNew prints every new application as a labelled block.
func displayNew(w io.Writer, ps []models.NewPassport) {
	fmt.Fprintln(w, "\n--- New Passports ---")
	if len(ps) == 0 {
		fmt.Fprintln(w, "No new passports to display.")
		return
	}
	for _, p := range ps {
		printNew(w, p)
	}
	fmt.Fprintln(w, separator)
}

func printOld(w io.Writer, p models.OldPassport) {
	fmt.Fprintf(w,
		"Type: %s, ID: %s, Name: %s, DOB: %s, Issue Date: %s, Expiry Date: %s, "+
			"Passport Number: %s, Account Number: %s, Balance: $%s, Created: %s, "+
			"Appointment: %s, Payment: $%s, Status: %s\n",
		p.PassType, p.ID, p.Name, p.DOB, p.IssueDate, p.ExpiredDate,
		p.PassportNumber, p.AccountNumber, p.Balance.StringFixed(2), p.CreatedDate,
		p.AppointmentDate, p.Payment, p.PaymentStatus)
}

// displayOld prints every old application on one line.
func displayOld(w io.Writer, ps []models.OldPassport) {
	if len(ps) == 0 {
		fmt.Fprintln(w, "No old passports found.")
		return
	}
	fmt.Fprintln(w, "\n-- List of Old Passports --")
	for _, p := range ps {
		printOld(w, p)
	}
}

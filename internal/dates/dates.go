// Package dates formats and shifts ISO (YYYY-MM-DD) date strings used for
// created and appointment dates.
package dates

import (
	"fmt"
	"time"
)

// Layout is the on-disk and on-screen date format.
const Layout = "2006-01-02"

// CurrentDate returns now's local calendar date as YYYY-MM-DD.
func CurrentDate(now time.Time) string {
	return now.Local().Format(Layout)
}

// parse splits a YYYY-MM-DD string into its numeric parts without checking
// calendar ranges.
func parse(date string) (year, month, day int, ok bool) {
	var rest string
	n, _ := fmt.Sscanf(date, "%d-%d-%d%s", &year, &month, &day, &rest)
	if n < 3 || rest != "" {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func format(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// OneMonthLater increments the month of date, rolling the year over after
// December. The day is carried over unchanged, so 2024-01-31 becomes
// 2024-02-31. An unparseable date yields "".
func OneMonthLater(date string) string {
	year, month, day, ok := parse(date)
	if !ok {
		return ""
	}
	month++
	if month > 12 {
		month = 1
		year++
	}
	return format(year, month, day)
}

// TwoDaysLater returns the calendar date two days after date.
// An unparseable date yields "".
func TwoDaysLater(date string) string {
	year, month, day, ok := parse(date)
	if !ok {
		return ""
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return t.AddDate(0, 0, 2).Format(Layout)
}

// Appointment returns the appointment date for an application created on
// created: two days later for urgent applications, one month later otherwise.
func Appointment(created string, urgent bool) string {
	if urgent {
		return TwoDaysLater(created)
	}
	return OneMonthLater(created)
}

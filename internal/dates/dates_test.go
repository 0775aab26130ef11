package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentDate(t *testing.T) {
	now := time.Date(2024, time.March, 5, 13, 45, 0, 0, time.Local)
	assert.Equal(t, "2024-03-05", CurrentDate(now))
}

func TestOneMonthLater(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-04-15"},
		{"2024-12-10", "2025-01-10"},
		// day is not clamped to the length of the next month
		{"2024-01-31", "2024-02-31"},
		{"not-a-date", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, OneMonthLater(tt.in))
		})
	}
}

func TestTwoDaysLater(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-17"},
		{"2024-02-28", "2024-03-01"},
		{"2023-02-28", "2023-03-02"},
		{"2024-12-31", "2025-01-02"},
		{"garbage", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TwoDaysLater(tt.in))
		})
	}
}

func TestAppointment(t *testing.T) {
	assert.Equal(t, "2024-04-10", Appointment("2024-03-10", false))
	assert.Equal(t, "2024-03-12", Appointment("2024-03-10", true))
}

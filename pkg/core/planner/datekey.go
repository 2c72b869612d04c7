package planner

import (
	"fmt"
	"time"
)

const dateKeyLayout = "02.01.2006"

// FormatDateKey formats a date as DD.MM.YYYY
func FormatDateKey(date time.Time) string {
	return date.Format(dateKeyLayout)
}

// ParseDateKey parses a DD.MM.YYYY date-key into a UTC date
func ParseDateKey(dateKey string) (time.Time, error) {
	date, err := time.Parse(dateKeyLayout, dateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}
	return date, nil
}

// DaysInMonth returns the number of calendar days of the month
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SundaysInMonth counts the Sundays of the month
func SundaysInMonth(year int, month time.Month) int {
	count := 0
	for day := 1; day <= DaysInMonth(year, month); day++ {
		if time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday() == time.Sunday {
			count++
		}
	}
	return count
}

func isoWeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

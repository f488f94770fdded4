package utils

import (
	"time"

	"financequest/src/model"
)

// nowFunc is swapped in tests to pin "real-world today".
var nowFunc = time.Now

// Today returns the current UTC calendar day.
func Today() model.Date {
	return model.DateOf(nowFunc())
}

// IsWeekend reports Saturday or Sunday. The calendar has no holiday table.
func IsWeekend(d model.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextBusinessDay returns the first weekday strictly after d.
func NextBusinessDay(d model.Date) model.Date {
	next := d.AddDays(1)
	for IsWeekend(next) {
		next = next.AddDays(1)
	}
	return next
}

// PreviousBusinessDay returns the last weekday strictly before d.
func PreviousBusinessDay(d model.Date) model.Date {
	prev := d.AddDays(-1)
	for IsWeekend(prev) {
		prev = prev.AddDays(-1)
	}
	return prev
}

// BusinessDaysBetween counts weekdays in [from, to], both ends inclusive.
func BusinessDaysBetween(from, to model.Date) int {
	if to.Before(from) {
		return 0
	}
	total := from.DaysUntil(to) + 1
	weeks := total / 7
	count := weeks * 5

	d := from.AddDays(weeks * 7)
	for !d.After(to) {
		if !IsWeekend(d) {
			count++
		}
		d = d.AddDays(1)
	}
	return count
}

// RemainingBusinessDays counts the business days after current up to and including today.
func RemainingBusinessDays(current, today model.Date) int {
	if !current.Before(today) {
		return 0
	}
	return BusinessDaysBetween(current.AddDays(1), today)
}

package models

import (
	"github.com/samber/lo"
	"time"
)

// ReminderWindows are the days-before-deadline at which a reminder is due.
var ReminderWindows = []int{15, 10, 5, 2}

type DueUniversity struct {
	University University
	DaysLeft   int
}

// SelectDue keeps the universities whose day count is exactly one of the windows, in input order.
func SelectDue(universities []University, windows []int, now time.Time) []DueUniversity {
	return lo.FilterMap(universities, func(university University, _ int) (DueUniversity, bool) {
		if university.Deadline.IsZero() {
			return DueUniversity{}, false
		}
		daysLeft := DaysLeft(university.Deadline, now)
		if daysLeft < 0 || !lo.Contains(windows, daysLeft) {
			return DueUniversity{}, false
		}
		return DueUniversity{University: university, DaysLeft: daysLeft}, true
	})
}

package models

import "time"

type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyWarning Urgency = "warning"
	UrgencySoon    Urgency = "soon"
	UrgencyNormal  Urgency = "normal"
)

const (
	urgentThreshold  = 2
	warningThreshold = 5
	soonThreshold    = 15
)

const day = 24 * time.Hour

// DaysLeft returns ceil((deadline - now) / 1 day). Past deadlines yield zero or negative values.
func DaysLeft(deadline, now time.Time) int {
	diff := deadline.Sub(now)
	days := int(diff / day)
	if diff%day > 0 {
		days++
	}
	return days
}

// Classify maps a day count to an urgency bucket. Boundary values belong to the stricter bucket,
// past deadlines are normal.
func Classify(daysLeft int) Urgency {
	switch {
	case daysLeft < 0:
		return UrgencyNormal
	case daysLeft <= urgentThreshold:
		return UrgencyUrgent
	case daysLeft <= warningThreshold:
		return UrgencyWarning
	case daysLeft <= soonThreshold:
		return UrgencySoon
	}
	return UrgencyNormal
}

func ClassifyDeadline(deadline, now time.Time) (int, Urgency) {
	daysLeft := DaysLeft(deadline, now)
	return daysLeft, Classify(daysLeft)
}

func (u Urgency) Priority() Priority {
	switch u {
	case UrgencyUrgent:
		return PriorityHigh
	case UrgencyWarning:
		return PriorityMedium
	case UrgencySoon, UrgencyNormal:
		return PriorityLow
	}
	return PriorityLow
}

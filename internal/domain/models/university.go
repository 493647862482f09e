package models

import (
	"fmt"
	"github.com/samber/lo"
	"strings"
	"time"
)

const DeadlineLayout = "2006-01-02"

type AdmissionStatus string

const (
	AdmissionOpen   AdmissionStatus = "open"
	AdmissionClosed AdmissionStatus = "closed"
)

func ToAdmissionStatus(s string) (AdmissionStatus, error) {
	switch AdmissionStatus(strings.ToLower(strings.TrimSpace(s))) {
	case AdmissionOpen:
		return AdmissionOpen, nil
	case AdmissionClosed, "":
		return AdmissionClosed, nil
	}
	return "", fmt.Errorf("invalid admission status: %q", s)
}

type University struct {
	Name            string          `json:"name" gorm:"primaryKey"`
	Country         string          `json:"country"`
	Ranking         int             `json:"ranking"`
	TuitionUSD      int             `json:"tuitionUSD"`
	TuitionLocal    int             `json:"tuitionLocal"`
	Currency        string          `json:"currency" gorm:"default:USD"`
	Programs        []string        `json:"programs" gorm:"serializer:json"`
	Deadline        time.Time       `json:"deadline"`
	Scholarships    bool            `json:"scholarships"`
	QualityScore    float64         `json:"qualityScore"`
	AcceptanceRate  float64         `json:"acceptanceRate"`
	AdmissionStatus AdmissionStatus `json:"admissionStatus" gorm:"default:closed"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

func (u University) IsOpen() bool {
	return u.AdmissionStatus == AdmissionOpen
}

func (u University) DeadlineString() string {
	if u.Deadline.IsZero() {
		return ""
	}
	return u.Deadline.Format(DeadlineLayout)
}

// ParseDeadline accepts a calendar date or a full RFC 3339 timestamp. Dates are read as UTC midnight.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if deadline, err := time.Parse(DeadlineLayout, s); err == nil {
		return deadline, nil
	}
	deadline, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid deadline %q: expected %s", s, DeadlineLayout)
	}
	return deadline, nil
}

// NormalizePrograms trims entries and drops empties and duplicates, keeping first occurrence order.
func NormalizePrograms(programs []string) []string {
	trimmed := lo.FilterMap(programs, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
	return lo.Uniq(trimmed)
}

// UniversityUpdate is a partial update; nil fields are left untouched.
type UniversityUpdate struct {
	Country         *string
	Ranking         *int
	TuitionUSD      *int
	TuitionLocal    *int
	Currency        *string
	Programs        []string
	Deadline        *time.Time
	Scholarships    *bool
	QualityScore    *float64
	AcceptanceRate  *float64
	AdmissionStatus *AdmissionStatus
}

func (u UniversityUpdate) Apply(university University) University {
	if u.Country != nil {
		university.Country = *u.Country
	}
	if u.Ranking != nil {
		university.Ranking = *u.Ranking
	}
	if u.TuitionUSD != nil {
		university.TuitionUSD = *u.TuitionUSD
	}
	if u.TuitionLocal != nil {
		university.TuitionLocal = *u.TuitionLocal
	}
	if u.Currency != nil {
		university.Currency = *u.Currency
	}
	if u.Programs != nil {
		university.Programs = NormalizePrograms(u.Programs)
	}
	if u.Deadline != nil {
		university.Deadline = *u.Deadline
	}
	if u.Scholarships != nil {
		university.Scholarships = *u.Scholarships
	}
	if u.QualityScore != nil {
		university.QualityScore = *u.QualityScore
	}
	if u.AcceptanceRate != nil {
		university.AcceptanceRate = *u.AcceptanceRate
	}
	if u.AdmissionStatus != nil {
		university.AdmissionStatus = *u.AdmissionStatus
	}
	return university
}

// UpdateFrom builds the update that turns a stored record into a freshly synced one.
func UpdateFrom(university University) UniversityUpdate {
	return UniversityUpdate{
		Country:         &university.Country,
		Ranking:         &university.Ranking,
		TuitionUSD:      &university.TuitionUSD,
		TuitionLocal:    &university.TuitionLocal,
		Currency:        &university.Currency,
		Programs:        university.Programs,
		Deadline:        &university.Deadline,
		Scholarships:    &university.Scholarships,
		QualityScore:    &university.QualityScore,
		AcceptanceRate:  &university.AcceptanceRate,
		AdmissionStatus: &university.AdmissionStatus,
	}
}

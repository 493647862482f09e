package models

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func Test_ParseDeadline(t *testing.T) {
	deadline, err := ParseDeadline("2025-01-15")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), deadline)

	deadline, err = ParseDeadline("2025-01-15T12:00:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), deadline)

	_, err = ParseDeadline("15/01/2025")
	assert.Error(t, err)

	_, err = ParseDeadline("")
	assert.Error(t, err)
}

func Test_ToAdmissionStatus(t *testing.T) {
	status, err := ToAdmissionStatus(" Open ")
	assert.NoError(t, err)
	assert.Equal(t, AdmissionOpen, status)

	status, err = ToAdmissionStatus("")
	assert.NoError(t, err)
	assert.Equal(t, AdmissionClosed, status)

	_, err = ToAdmissionStatus("pending")
	assert.Error(t, err)
}

func Test_NormalizePrograms(t *testing.T) {
	programs := NormalizePrograms([]string{" Law", "Medicine ", "", "Law", "Physics"})
	assert.Equal(t, []string{"Law", "Medicine", "Physics"}, programs)
}

func Test_UniversityUpdate_Apply_LeavesNilFieldsUntouched(t *testing.T) {
	university := University{Name: "MIT", Country: "United States", Ranking: 1, Currency: "USD",
		AdmissionStatus: AdmissionClosed}

	open := AdmissionOpen
	ranking := 3
	updated := UniversityUpdate{AdmissionStatus: &open, Ranking: &ranking}.Apply(university)

	assert.Equal(t, "MIT", updated.Name)
	assert.Equal(t, "United States", updated.Country)
	assert.Equal(t, "USD", updated.Currency)
	assert.Equal(t, 3, updated.Ranking)
	assert.True(t, updated.IsOpen())
	assert.False(t, university.IsOpen())
}

package sheets

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/samber/lo"
	"strconv"
	"strings"
	"time"
)

var columns = []string{
	"name", "country", "ranking", "tuitionUSD", "tuitionLocal", "currency", "programs",
	"deadline", "scholarships", "qualityScore", "acceptanceRate", "admissionStatus", "lastUpdated",
}

// universityRow is the sheet schema: one string cell per column, validated before conversion.
type universityRow struct {
	Name            string `validate:"required"`
	Country         string
	Ranking         string `validate:"omitempty,number"`
	TuitionUSD      string `validate:"omitempty,number"`
	TuitionLocal    string `validate:"omitempty,number"`
	Currency        string `validate:"omitempty,len=3"`
	Programs        string
	Deadline        string `validate:"required"`
	Scholarships    string `validate:"omitempty,oneof=true false TRUE FALSE"`
	QualityScore    string `validate:"omitempty,numeric"`
	AcceptanceRate  string `validate:"omitempty,numeric"`
	AdmissionStatus string `validate:"omitempty,oneof=open closed"`
	LastUpdated     string
}

var validate = validator.New()

// header maps column names to their positions. width is the full row width, blank and
// repeated header cells included.
type header struct {
	positions map[string]int
	width     int
}

func newHeader(cells []any) header {
	h := header{positions: make(map[string]int, len(cells)), width: len(cells)}
	for i, cell := range cells {
		name := strings.TrimSpace(fmt.Sprint(cell))
		if name == "" {
			continue
		}
		// first column with a given name wins
		if _, seen := h.positions[name]; !seen {
			h.positions[name] = i
		}
	}
	return h
}

func (h header) empty() bool {
	return len(h.positions) == 0
}

func (h header) cell(cells []any, column string) string {
	i, ok := h.positions[column]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(cells[i]))
}

func parseRow(h header, cells []any) (models.University, error) {
	row := universityRow{
		Name:            h.cell(cells, "name"),
		Country:         h.cell(cells, "country"),
		Ranking:         h.cell(cells, "ranking"),
		TuitionUSD:      h.cell(cells, "tuitionUSD"),
		TuitionLocal:    h.cell(cells, "tuitionLocal"),
		Currency:        strings.ToUpper(h.cell(cells, "currency")),
		Programs:        h.cell(cells, "programs"),
		Deadline:        h.cell(cells, "deadline"),
		Scholarships:    h.cell(cells, "scholarships"),
		QualityScore:    h.cell(cells, "qualityScore"),
		AcceptanceRate:  h.cell(cells, "acceptanceRate"),
		AdmissionStatus: strings.ToLower(h.cell(cells, "admissionStatus")),
		LastUpdated:     h.cell(cells, "lastUpdated"),
	}

	if err := validate.Struct(row); err != nil {
		return models.University{}, fmt.Errorf("row %q: %w", row.Name, err)
	}
	return row.toUniversity()
}

func (r universityRow) toUniversity() (models.University, error) {
	deadline, err := models.ParseDeadline(r.Deadline)
	if err != nil {
		return models.University{}, fmt.Errorf("row %q: %w", r.Name, err)
	}

	status, err := models.ToAdmissionStatus(r.AdmissionStatus)
	if err != nil {
		return models.University{}, fmt.Errorf("row %q: %w", r.Name, err)
	}

	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}

	lastUpdated, _ := time.Parse(time.RFC3339, r.LastUpdated)

	return models.University{
		Name:            r.Name,
		Country:         r.Country,
		Ranking:         atoi(r.Ranking),
		TuitionUSD:      atoi(r.TuitionUSD),
		TuitionLocal:    atoi(r.TuitionLocal),
		Currency:        currency,
		Programs:        models.NormalizePrograms(strings.Split(r.Programs, ",")),
		Deadline:        deadline,
		Scholarships:    strings.EqualFold(r.Scholarships, "true"),
		QualityScore:    atof(r.QualityScore),
		AcceptanceRate:  atof(r.AcceptanceRate),
		AdmissionStatus: status,
		LastUpdated:     lastUpdated,
	}, nil
}

func cellValues(u models.University, lastUpdated time.Time) map[string]any {
	return map[string]any{
		"name":            u.Name,
		"country":         u.Country,
		"ranking":         strconv.Itoa(u.Ranking),
		"tuitionUSD":      strconv.Itoa(u.TuitionUSD),
		"tuitionLocal":    strconv.Itoa(u.TuitionLocal),
		"currency":        u.Currency,
		"programs":        strings.Join(u.Programs, ","),
		"deadline":        u.DeadlineString(),
		"scholarships":    strconv.FormatBool(u.Scholarships),
		"qualityScore":    strconv.FormatFloat(u.QualityScore, 'f', -1, 64),
		"acceptanceRate":  strconv.FormatFloat(u.AcceptanceRate, 'f', -1, 64),
		"admissionStatus": string(u.AdmissionStatus),
		"lastUpdated":     lastUpdated.UTC().Format(time.RFC3339),
	}
}

// layout orders values by the sheet's own header; unknown columns stay empty.
func (h header) layout(values map[string]any) []any {
	cells := make([]any, h.width)
	for i := range cells {
		cells[i] = ""
	}
	for column, i := range h.positions {
		if value, ok := values[column]; ok {
			cells[i] = value
		}
	}
	return cells
}

func defaultHeader() header {
	return newHeader(lo.ToAnySlice(columns))
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

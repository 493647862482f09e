package catalog

import (
	"context"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
)

type entry struct {
	Name            string   `yaml:"name" validate:"required"`
	Country         string   `yaml:"country"`
	Ranking         int      `yaml:"ranking" validate:"gte=0"`
	TuitionUSD      int      `yaml:"tuition_usd" validate:"gte=0"`
	TuitionLocal    int      `yaml:"tuition_local" validate:"gte=0"`
	Currency        string   `yaml:"currency" validate:"omitempty,len=3"`
	Programs        []string `yaml:"programs"`
	Deadline        string   `yaml:"deadline" validate:"required"`
	Scholarships    bool     `yaml:"scholarships"`
	QualityScore    float64  `yaml:"quality_score" validate:"gte=0,lte=10"`
	AcceptanceRate  float64  `yaml:"acceptance_rate" validate:"gte=0,lte=100"`
	AdmissionStatus string   `yaml:"admission_status" validate:"omitempty,oneof=open closed"`
}

type document struct {
	Universities []entry `yaml:"universities"`
}

var validate = validator.New()

// File is a university catalog kept as a YAML document.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the whole catalog. A single invalid entry fails the load so a broken
// file never partially overwrites the stored universities.
func (f *File) Load(ctx context.Context) ([]models.University, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("can't read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]models.University, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("can't decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Universities))
	universities := make([]models.University, 0, len(doc.Universities))
	for i, e := range doc.Universities {
		e.Name = strings.TrimSpace(e.Name)
		e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))

		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, e.Name, err)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicated university %q", i, e.Name)
		}
		seen[e.Name] = struct{}{}

		university, err := e.toUniversity()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, e.Name, err)
		}
		universities = append(universities, university)
	}
	return universities, nil
}

func (e entry) toUniversity() (models.University, error) {
	deadline, err := models.ParseDeadline(e.Deadline)
	if err != nil {
		return models.University{}, err
	}
	status, err := models.ToAdmissionStatus(e.AdmissionStatus)
	if err != nil {
		return models.University{}, err
	}

	currency := e.Currency
	if currency == "" {
		currency = "USD"
	}
	tuitionLocal := e.TuitionLocal
	if tuitionLocal == 0 {
		tuitionLocal = e.TuitionUSD
	}

	return models.University{
		Name:            e.Name,
		Country:         e.Country,
		Ranking:         e.Ranking,
		TuitionUSD:      e.TuitionUSD,
		TuitionLocal:    tuitionLocal,
		Currency:        currency,
		Programs:        models.NormalizePrograms(e.Programs),
		Deadline:        deadline,
		Scholarships:    e.Scholarships,
		QualityScore:    e.QualityScore,
		AcceptanceRate:  e.AcceptanceRate,
		AdmissionStatus: status,
	}, nil
}

package email

import "fmt"

type TemplateKind string

const (
	TemplateDeadline     TemplateKind = "deadline"
	TemplateNewAdmission TemplateKind = "new_admission"
	TemplateScholarship  TemplateKind = "scholarship"
	TemplateGeneric      TemplateKind = "generic"
)

// Data is what the templates can reference. Only the fields relevant to a kind are read.
type Data struct {
	UniversityName string
	Deadline       string
	DaysLeft       int
	Programs       []string
	Title          string
	Details        string
}

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m Message) HasContent() bool { return m.Text != "" || m.HTML != "" }

func subject(kind TemplateKind, data Data) (string, error) {
	switch kind {
	case TemplateDeadline:
		return fmt.Sprintf("%s%s Application Deadline in %d Days",
			urgencyPrefix(data.DaysLeft), data.UniversityName, data.DaysLeft), nil
	case TemplateNewAdmission:
		return "New Admission Opening: " + data.UniversityName, nil
	case TemplateScholarship:
		return "Scholarship Opportunity at " + data.UniversityName, nil
	case TemplateGeneric:
		return data.Title, nil
	}
	return "", fmt.Errorf("unknown email template: %q", kind)
}

func urgencyPrefix(daysLeft int) string {
	switch {
	case daysLeft <= 2:
		return "URGENT: "
	case daysLeft <= 5:
		return "Important: "
	default:
		return ""
	}
}

type palette struct {
	Background string
	Text       string
}

func deadlinePalette(daysLeft int) palette {
	switch {
	case daysLeft <= 2:
		return palette{Background: "#fee", Text: "#d63384"}
	case daysLeft <= 5:
		return palette{Background: "#fef5e7", Text: "#fd7e14"}
	default:
		return palette{Background: "#e8f5e8", Text: "#198754"}
	}
}

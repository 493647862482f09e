package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltmpl "html/template"
	texttmpl "text/template"
)

//go:embed templates
var templateFiles embed.FS

const defaultAppName = "UniNotify AI"

type templateSet struct {
	text *texttmpl.Template
	html *htmltmpl.Template
}

type templateContext struct {
	Data
	AppName string
	Palette palette
}

var allKinds = []TemplateKind{TemplateDeadline, TemplateNewAdmission, TemplateScholarship, TemplateGeneric}

func parseTemplates() (map[TemplateKind]templateSet, error) {
	sets := make(map[TemplateKind]templateSet, len(allKinds))
	for _, kind := range allKinds {
		text, err := texttmpl.ParseFS(templateFiles, "templates/"+string(kind)+".txt")
		if err != nil {
			return nil, fmt.Errorf("parsing %s text template: %w", kind, err)
		}
		html, err := htmltmpl.ParseFS(templateFiles, "templates/layout.gohtml", "templates/"+string(kind)+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parsing %s html template: %w", kind, err)
		}
		sets[kind] = templateSet{
			text: text.Option("missingkey=error"),
			html: html.Lookup(string(kind) + ".gohtml").Option("missingkey=error"),
		}
	}
	return sets, nil
}

// Renderer turns template data into a ready to deliver message.
type Renderer struct {
	appName string
	sets    map[TemplateKind]templateSet
}

func NewRenderer(appName string) (*Renderer, error) {
	if appName == "" {
		appName = defaultAppName
	}
	sets, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Renderer{appName: appName, sets: sets}, nil
}

func (r *Renderer) Render(kind TemplateKind, to string, data Data) (Message, error) {
	set, ok := r.sets[kind]
	if !ok {
		return Message{}, fmt.Errorf("unknown email template: %q", kind)
	}
	subj, err := subject(kind, data)
	if err != nil {
		return Message{}, err
	}

	ctx := templateContext{Data: data, AppName: r.appName, Palette: deadlinePalette(data.DaysLeft)}

	var text bytes.Buffer
	if err := set.text.Execute(&text, ctx); err != nil {
		return Message{}, fmt.Errorf("rendering %s text: %w", kind, err)
	}
	var html bytes.Buffer
	if err := set.html.Execute(&html, ctx); err != nil {
		return Message{}, fmt.Errorf("rendering %s html: %w", kind, err)
	}

	return Message{To: to, Subject: subj, Text: text.String(), HTML: html.String()}, nil
}

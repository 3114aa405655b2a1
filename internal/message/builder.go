// Package message renders channel-agnostic notification messages from content changes.
//
// Build is a pure function: the same change always yields a byte-identical Message.
// Nothing in here reads the clock or any other ambient state.
package message

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/aliskhannn/market-notifier/internal/model"
)

// ErrMalformedInput is returned when a change cannot be rendered at all.
var ErrMalformedInput = errors.New("malformed message input")

// Field is one labelled line of the structured body.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Message is a rendered notification.
//
// Subject, Summary and Fields form the rich representation (email, rich chat);
// Text is the plain fallback for channels that cannot render structure.
type Message struct {
	Subject string  `json:"subject"`
	Summary string  `json:"summary"`
	Fields  []Field `json:"fields,omitempty"`
	HTML    string  `json:"html"`
	Text    string  `json:"text"`
}

// HasStructure reports whether the message has a structured body to render richly.
func (m Message) HasStructure() bool {
	return len(m.Fields) > 0
}

// Build renders a change into a Message.
func Build(change model.ContentChange) (Message, error) {
	if change.Current == nil {
		return Message{}, fmt.Errorf("%w: current snapshot is required", ErrMalformedInput)
	}

	var c content
	switch change.ContentType {
	case model.ContentEarnings:
		c = earnings(change)
	case model.ContentDividend:
		c = dividend(change)
	case model.ContentIndicator:
		c = indicator(change)
	default:
		return Message{}, fmt.Errorf("%w: unknown content type %q", ErrMalformedInput, change.ContentType)
	}

	html, err := renderHTML(c)
	if err != nil {
		return Message{}, fmt.Errorf("render html: %w", err)
	}

	return Message{
		Subject: c.subject,
		Summary: c.summary,
		Fields:  c.fields,
		HTML:    html,
		Text:    renderText(c),
	}, nil
}

// content is the intermediate form every renderer produces.
type content struct {
	subject string
	summary string
	fields  []Field
}

func genericContent(name string) content {
	return content{
		subject: fmt.Sprintf("[알림] %s", name),
		summary: fmt.Sprintf("%s에 대한 업데이트가 있습니다.", name),
	}
}

var htmlTemplate = template.Must(template.New("message").Parse(`<div>
<h2>{{.Subject}}</h2>
<p>{{.Summary}}</p>
{{- if .Fields}}
<ul>
{{- range .Fields}}
<li><strong>{{.Label}}</strong>: {{.Value}}</li>
{{- end}}
</ul>
{{- end}}
</div>`))

func renderHTML(c content) (string, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Subject string
		Summary string
		Fields  []Field
	}{c.subject, c.summary, c.fields})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderText(c content) string {
	var b strings.Builder
	b.WriteString(c.subject)
	b.WriteString("\n")
	b.WriteString(c.summary)
	for _, f := range c.fields {
		b.WriteString("\n")
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(f.Value)
	}
	return b.String()
}

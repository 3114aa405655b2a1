package message

import (
	"strings"

	"github.com/aliskhannn/market-notifier/internal/model"
)

const (
	placeholder = "-"
	arrow       = " → "
)

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

// tracked pairs a label with an accessor for one snapshot field.
type tracked struct {
	label string
	get   func(*model.Snapshot) string
}

// changedFields renders "before → current" for every tracked field whose value differs.
// A nil before snapshot is treated as all fields absent.
func changedFields(before, current *model.Snapshot, fields []tracked) []Field {
	var out []Field
	for _, f := range fields {
		prev := ""
		if before != nil {
			prev = f.get(before)
		}
		next := f.get(current)
		if prev == next {
			continue
		}
		out = append(out, Field{Label: f.label, Value: orDash(prev) + arrow + orDash(next)})
	}
	return out
}

// companyName renders "Apple (AAPL)", falling back to whichever part is present.
func companyName(s *model.Snapshot) string {
	name := strings.TrimSpace(s.CompanyName)
	ticker := strings.TrimSpace(s.Ticker)
	switch {
	case name != "" && ticker != "":
		return name + " (" + ticker + ")"
	case name != "":
		return name
	case ticker != "":
		return ticker
	}
	return placeholder
}

func indicatorName(s *model.Snapshot) string {
	name := strings.TrimSpace(s.IndicatorName)
	if name == "" {
		name = strings.TrimSpace(s.BaseName)
	}
	country := strings.TrimSpace(s.Country)
	switch {
	case name != "" && country != "":
		return name + " (" + country + ")"
	case name != "":
		return name
	}
	return placeholder
}

func dateWithTiming(date, timing string) string {
	if strings.TrimSpace(timing) == "" {
		return orDash(date)
	}
	return orDash(date) + " " + timing
}

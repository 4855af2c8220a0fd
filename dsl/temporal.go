package dsl

import (
	"regexp"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
)

// Date accepts a non-empty string holding a calendar date, optionally with a
// time of day. The string itself is the checked value.
type Date struct{}

func (Date) Variant() Variant { return VariantDate }

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseDate parses s with the first matching date layout.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (Date) Check(p bf.Path, v any) (any, bf.Issues) {
	s, ok := v.(string)
	if !ok {
		return nil, bf.Issues{typeIssue(p, "string", v, "")}
	}
	if s == "" {
		return nil, bf.Issues{issue(p, bf.CodeTooSmall, i18n.T(i18n.FieldDateRequired, nil), "minimum", 1)}
	}
	if _, ok := ParseDate(s); !ok {
		return nil, bf.Issues{issue(p, bf.CodeInvalidFormat, i18n.T(i18n.FieldDate, nil), "format", "date")}
	}
	return s, nil
}

func (Date) OpenAPI() *openapi3.Schema {
	return openapi3.NewStringSchema().WithFormat("date").WithMinLength(1)
}

// DateTime accepts UTC timestamps of the form 2006-01-02T15:04:05(.fraction)Z.
type DateTime struct{}

func (DateTime) Variant() Variant { return VariantDateTime }

var dateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)

// ParseDateTime reports whether s is a strict UTC timestamp and returns it.
func ParseDateTime(s string) (time.Time, bool) {
	if !dateTimeRe.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (DateTime) Check(p bf.Path, v any) (any, bf.Issues) {
	s, ok := v.(string)
	if !ok {
		return nil, bf.Issues{typeIssue(p, "string", v, "")}
	}
	if _, ok := ParseDateTime(s); !ok {
		return nil, bf.Issues{issue(p, bf.CodeInvalidFormat, i18n.T(i18n.FieldDatetime, nil), "format", "date-time")}
	}
	return s, nil
}

func (DateTime) OpenAPI() *openapi3.Schema {
	return openapi3.NewStringSchema().WithFormat("date-time")
}

package dsl

import (
	"time"

	jsonlint "github.com/jsonlint/jsonlint"
)

const (
	// LayoutDateTime is the default layout for DateTime fields.
	LayoutDateTime = "2006-01-02 15:04:05"
	// LayoutDate is the default layout for Date fields.
	LayoutDate = "2006-01-02"
	// LayoutTime is the default layout for Time fields.
	LayoutTime = "15:04"
)

// DateTime returns a time.Time field spec parsed with the given layout
// (LayoutDateTime when omitted). Empty string and null input leave the
// default in place without recording an error.
func DateTime(layout ...string) *Spec {
	return timeSpec(kindDateTime, pickLayout(layout, LayoutDateTime), jsonlint.CodeInvalidDateTime)
}

// Date returns a date field spec (LayoutDate when omitted).
func Date(layout ...string) *Spec {
	return timeSpec(kindDate, pickLayout(layout, LayoutDate), jsonlint.CodeInvalidDate)
}

// Time returns a time-of-day field spec (LayoutTime when omitted).
func Time(layout ...string) *Spec {
	return timeSpec(kindTime, pickLayout(layout, LayoutTime), jsonlint.CodeInvalidTime)
}

func pickLayout(layout []string, fallback string) string {
	if len(layout) > 0 && layout[0] != "" {
		return layout[0]
	}
	return fallback
}

func timeSpec(kind specKind, layout, code string) *Spec {
	return &Spec{kind: kind, coerce: func(raw any) (any, bool, error) {
		switch v := raw.(type) {
		case nil:
			return nil, false, nil
		case time.Time:
			return v, true, nil
		case string:
			if v == "" {
				return nil, false, nil
			}
			t, err := time.Parse(layout, v)
			if err != nil {
				return nil, false, coerceIssue(code, map[string]string{"layout": layout})
			}
			return t, true, nil
		}
		return nil, false, coerceIssue(code, map[string]string{"layout": layout})
	}}
}

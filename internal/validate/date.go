package validate

import (
	"strings"
	"time"
)

// Day-first layouts come before anything month-first so "03/04/1990" reads as
// 3 April, matching how the source documents print dates.
var dateLayouts = []string{
	"02/01/2006", "2/1/2006",
	"02-01-2006", "2-1-2006",
	"02.01.2006", "2.1.2006",
	"02/01/06", "02-01-06", "02.01.06",
	"2006-01-02", "2006/01/02",
	"2 Jan 2006", "2 January 2006",
	"02 Jan 2006", "02 January 2006",
	"Jan 2 2006", "January 2 2006",
	"Jan 02 2006", "January 02 2006",
}

// CleanDate parses a date written in any of the accepted document formats and
// returns it as YYYY-MM-DD. Unparseable input returns ok=false; callers drop
// the field rather than failing the page.
func CleanDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", " ")
	s = reSpace.ReplaceAllString(s, " ")
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// Two-digit-year layouts can swallow four-digit years badly; reject
		// anything outside a plausible document range.
		if t.Year() < 1900 || t.Year() > 2100 {
			continue
		}
		return t.Format("2006-01-02"), true
	}
	return "", false
}

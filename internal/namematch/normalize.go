// Package namematch reconciles the customer name across a bundle's pages.
// Each page that plausibly names the customer yields a candidate; candidates
// are normalized, scored pairwise, and one raw name is elected for the record.
package namematch

import (
	"regexp"
	"strings"
)

// Honorifics removed wherever they appear as whole words, dot or no dot.
// The bare form is only removed when another token follows, so a real
// surname in final position survives.
var reTitle = regexp.MustCompile(`\b(?:mr|mrs|ms|miss|dr|prof|shri|smt|sri|srimati|kumari|master|mx)(?:\.\s*|\s+)`)

// Relative indicators mark where a name ends and a relation begins
// ("Ramesh S/O Suresh" names Ramesh, not Suresh). Matched as whole words:
// "son of" must not fire inside "Jackson Ofori".
var reRelative = regexp.MustCompile(`\b(?:w/o|d/o|s/o|c/o|wife of|daughter of|son of|care of)\b`)

// Normalize lowers, strips honorifics, truncates at the first relative
// indicator, and collapses runs of whitespace. The result is the comparison
// key; the raw name is what reaches the record.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	s = reTitle.ReplaceAllString(s, "")
	if loc := reRelative.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, ".,:;"); f != "" {
			kept = append(kept, f)
		}
	}

	return strings.Join(kept, " ")
}

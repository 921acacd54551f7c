package extract

import "regexp"

// Fallback search patterns, per field. Label-anchored patterns come before
// bare scans so a labeled value beats an incidental lookalike elsewhere on
// the page. The first match that also passes cleaning+validation wins.
var (
	aadhaarPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:aadhaar|uid)\s*(?:no|number)?\.?[:\s]*(\d{4}\s?\d{4}\s?\d{4})`),
		regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`),
	}

	panPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:permanent\s+account\s+number|pan)\s*(?:no|number)?\.?[:\s]*([A-Z]{5}[0-9]{4}[A-Z])`),
		regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`),
	}

	dlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:dl|licence|license)\s*(?:no|number)?\.?[:\s]*([A-Z]{2}\s?[0-9]{2}\s?[0-9]{11})`),
		regexp.MustCompile(`\b[A-Z]{2}[0-9]{2}\s?[0-9]{11}\b`),
	}

	rcPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:regn\.?\s?no\.?|reg\.?\s?no\.?|registration\s?no\.?)[:\s]*([A-Z]{2}[0-9]{1,2}[A-Z]{1,3}[0-9]{4})`),
		regexp.MustCompile(`\b[A-Z]{2}[0-9]{1,2}[A-Z]{1,3}[0-9]{4}\b`),
		regexp.MustCompile(`\b[A-Z]{2}[0-9]{2}\s[A-Z]{1,2}\s[0-9]{4}\b`),
		regexp.MustCompile(`\b[A-Z]{2}-[0-9]{1,2}-[A-Z]{1,3}-[0-9]{4}\b`),
	}

	vinPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:chassis|vin)\s*(?:no|number)?\.?[:\s]*([A-HJ-NPR-Z0-9]{17})`),
		regexp.MustCompile(`\b[A-HJ-NPR-Z0-9]{17}\b`),
	}

	enginePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:engine|eng)\.?\s*(?:no|number)?\.?[:\s]*([A-Z0-9]{7,12})`),
		regexp.MustCompile(`\b[A-Z0-9]{7,12}\b`),
	}

	gstinPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:gstin|gst\s?no\.?|gst\s?reg\.?\s?no\.?)[:\s]*([0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9]Z[0-9])`),
		regexp.MustCompile(`\b[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9]Z[0-9]\b`),
	}

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:legal\s?name|trade\s?name)[:\s]*([A-Z][A-Z\s&.]+)`),
		regexp.MustCompile(`(?i)(?:business\s?name|company\s?name)[:\s]*([A-Z][A-Z\s&.]+)`),
	}
)

// searchText scans the ordered pattern list and returns the first match whose
// cleaned value validates. The clean function is the same one applied to
// gateway output, so both cascade paths share one format rule.
func searchText(text string, patterns []*regexp.Regexp, clean func(string) (string, bool)) (string, bool) {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			raw := m[0]
			if len(m) > 1 && m[1] != "" {
				raw = m[1]
			}
			if cleaned, ok := clean(raw); ok {
				return cleaned, true
			}
		}
	}
	return "", false
}

// cascade resolves one field: gateway value first, text search second.
// The returned candidate keeps the raw value for diagnosis.
func cascade(field, rawFromGateway, text string, patterns []*regexp.Regexp, clean func(string) (string, bool)) FieldCandidate {
	cand := FieldCandidate{FieldName: field, RawValue: rawFromGateway}
	if rawFromGateway != "" {
		if cleaned, ok := clean(rawFromGateway); ok {
			cand.CleanedValue, cand.Valid = cleaned, true
			return cand
		}
	}
	if cleaned, ok := searchText(text, patterns, clean); ok {
		cand.CleanedValue, cand.Valid = cleaned, true
	}
	return cand
}

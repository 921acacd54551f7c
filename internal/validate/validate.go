// Package validate holds the pure format rules for every credential field the
// extractors produce. Each Clean* function strips OCR noise (spaces, hyphens,
// stray punctuation) and returns the canonical value plus whether it passed
// the fixed format for that field. Nothing here touches I/O.
package validate

import "regexp"

var (
	reAadhaar = regexp.MustCompile(`^[0-9]{12}$`)
	rePAN     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	reDL      = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[0-9]{11}$`)
	reRC      = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,3}[0-9]{4}$`)
	reVIN     = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	reEngine  = regexp.MustCompile(`^[A-Z0-9]{7,12}$`)
	reGSTIN   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9]Z[0-9]$`)

	reNonDigit  = regexp.MustCompile(`[^0-9]`)
	reSpace     = regexp.MustCompile(`\s+`)
	reSpaceDash = regexp.MustCompile(`[\s\-]+`)
)

// CleanAadhaar strips everything but digits; valid iff exactly 12 remain.
func CleanAadhaar(raw string) (string, bool) {
	s := reNonDigit.ReplaceAllString(raw, "")
	return s, reAadhaar.MatchString(s)
}

// CleanPAN uppercases and strips whitespace; valid iff 5 letters + 4 digits + 1 letter.
func CleanPAN(raw string) (string, bool) {
	s := upperStripSpace(raw)
	return s, rePAN.MatchString(s)
}

// CleanDL uppercases and strips whitespace; valid iff 2 letters + 2 digits + 11 digits.
func CleanDL(raw string) (string, bool) {
	s := upperStripSpace(raw)
	return s, reDL.MatchString(s)
}

// CleanRC uppercases and strips spaces and hyphens; valid iff the state-series
// shape matches and the stripped value is 9 or 10 characters long.
func CleanRC(raw string) (string, bool) {
	s := upper(reSpaceDash.ReplaceAllString(raw, ""))
	ok := reRC.MatchString(s) && len(s) >= 9 && len(s) <= 10
	return s, ok
}

// CleanVIN uppercases and strips whitespace; valid iff 17 chars from the VIN
// alphabet (I, O and Q excluded).
func CleanVIN(raw string) (string, bool) {
	s := upperStripSpace(raw)
	return s, reVIN.MatchString(s)
}

// CleanEngine uppercases and strips whitespace; valid iff 7-12 alphanumerics.
func CleanEngine(raw string) (string, bool) {
	s := upperStripSpace(raw)
	return s, reEngine.MatchString(s)
}

// CleanGSTIN uppercases and strips whitespace; valid iff the 15-char GSTIN
// shape matches, including the literal Z at position 14.
func CleanGSTIN(raw string) (string, bool) {
	s := upperStripSpace(raw)
	return s, reGSTIN.MatchString(s)
}

func upperStripSpace(s string) string {
	return upper(reSpace.ReplaceAllString(s, ""))
}

func upper(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

package validate

import "strings"

var genderSynonyms = map[string]string{
	"male":   "Male",
	"m":      "Male",
	"man":    "Male",
	"female": "Female",
	"f":      "Female",
	"woman":  "Female",
}

// CleanGender maps common OCR/model spellings to the two canonical tokens.
// Unrecognized values pass through trimmed but otherwise verbatim; dropping
// them would lose information the document genuinely carries.
func CleanGender(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canon, ok := genderSynonyms[strings.ToLower(trimmed)]; ok {
		return canon
	}
	return trimmed
}

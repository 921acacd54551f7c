package extract

import (
	"fmt"
	"strings"
)

const maxPromptText = 6000

func clip(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > maxPromptText {
		return text[:maxPromptText] + "\n…(truncated)"
	}
	return text
}

// Every prompt pairs with a permissive all-string schema: the gateway may
// omit anything, and validation of the values themselves happens in the
// cleaning step, not in the schema.
func stringSchema(keys ...string) map[string]any {
	props := make(map[string]any, len(keys))
	for _, k := range keys {
		props[k] = map[string]any{"type": []string{"string", "null"}}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

func aadhaarPrompt(text string) string {
	return fmt.Sprintf(`Extract the following from this Aadhaar card:
1. Aadhaar Number (exactly 12 digits, may appear as XXXX XXXX XXXX)
2. Date of Birth
3. Gender (Male/Female)
4. Full Address
5. City
6. State

Return ONLY a JSON object:
{"aadhaar_number": "...", "dob": "...", "gender": "...", "address": "...", "city": "...", "state": "..."}

OCR text:
%s
`, clip(text))
}

func panPrompt(text string) string {
	return fmt.Sprintf(`Extract the following from this PAN card:
1. PAN Number (format AAAAA9999A: 5 letters, 4 digits, 1 letter)
2. Date of Birth

Return ONLY a JSON object:
{"pan_number": "...", "dob": "..."}

OCR text:
%s
`, clip(text))
}

func dlPrompt(text string) string {
	return fmt.Sprintf(`Extract the following from this Driving License:
1. DL Number (2 letters, 2 digits, 11 digits; may have spaces)
2. Date of Birth
3. Full Address
4. City
5. State
6. Gender

Return ONLY a JSON object:
{"dl_number": "...", "dob": "...", "address": "...", "city": "...", "state": "...", "gender": "..."}

OCR text:
%s
`, clip(text))
}

func rcPrompt(text string) string {
	return fmt.Sprintf(`Extract the Vehicle Registration Number (RC number) from this Registration Certificate.
Format: 2 letters, 1-2 digits, 1-3 letters, 4 digits; may have spaces or hyphens (AA 99 AA 9999).

Return ONLY a JSON object:
{"rc_number": "..."}

OCR text:
%s
`, clip(text))
}

func vehiclePrompt(docName, text string) string {
	return fmt.Sprintf(`Extract vehicle details from this %s.
1. VIN / Chassis Number (17 alphanumeric characters; VIN and chassis number are the SAME value)
2. Engine Number (7-12 alphanumeric characters)

Return ONLY a JSON object:
{"vin_number": "...", "chassis_number": "...", "engine_number": "..."}

OCR text:
%s
`, docName, clip(text))
}

func businessPrompt(text string) string {
	return fmt.Sprintf(`Extract business registration details from this document.
1. GSTIN (exactly 15 characters: 2 digits, 5 letters, 4 digits, 1 letter, 1 digit, the letter Z, 1 digit)
2. Legal Name / Trade Name of the company

Return ONLY a JSON object:
{"gstin": "...", "company_name": "..."}

OCR text:
%s
`, clip(text))
}

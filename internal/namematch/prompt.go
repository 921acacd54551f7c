package namematch

import "fmt"

const maxPromptText = 6000

func namePrompt(docName, pageText string) string {
	if len(pageText) > maxPromptText {
		pageText = pageText[:maxPromptText]
	}
	return fmt.Sprintf(`The text below is OCR output from a %s.
Find the name of the customer (the document holder or buyer), not a relative,
witness, dealer or issuing officer.

Reply with a JSON object only, in this exact shape:
{"customer_name": "<name as printed, or null if no customer name is present>"}

Text:
%s`, docName, pageText)
}

func nameSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"customer_name": map[string]any{"type": []string{"string", "null"}},
		},
	}
}

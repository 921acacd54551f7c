package classify

import (
	"fmt"
	"strings"
)

const maxPromptText = 6000

func buildPrompt(pageText, pageID string) string {
	text := strings.TrimSpace(pageText)
	if len(text) > maxPromptText {
		text = text[:maxPromptText] + "\n…(truncated)"
	}

	var b strings.Builder
	b.WriteString(`Identify the document type from this OCR text. Pick exactly one:
1. "government_identity" - government identity documents (Aadhaar card, PAN card, driving license)
2. "vehicle_document" - vehicle paperwork (registration certificate, sales tax invoice, delivery acknowledgement note, customer discount declaration note, customer exchange declaration note)
3. "business_document" - business registration documents; requires "GST Reg" or "Government of India" AND one of "Legal Name", "Trade Name", "Business"
4. "unknown" - if the type cannot be determined

For government_identity also pick sub_type: aadhaar | pan | driving_license.
For vehicle_document also pick sub_type: sales_tax_invoice | delivery_acknowledgement_note | customer_discount_declaration_note | customer_exchange_declaration_note | registration_certificate.
For business_document use sub_type business_gst.

Return ONLY a JSON object:
{
  "document_type": "government_identity|vehicle_document|business_document|unknown",
  "sub_type": "aadhaar|pan|driving_license|sales_tax_invoice|delivery_acknowledgement_note|customer_discount_declaration_note|customer_exchange_declaration_note|registration_certificate|business_gst|unknown",
  "confidence": "high|medium|low",
  "indicators": ["text phrases that led to this classification"]
}

`)
	fmt.Fprintf(&b, "OCR text from %s:\n%s\n", pageID, text)
	return b.String()
}

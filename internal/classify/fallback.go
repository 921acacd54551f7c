package classify

import (
	"regexp"
	"strings"

	"github.com/arvind-menon/dossier/constants"
)

// The fallback decision is a rule table rather than an if/else chain: each
// rule binds a kind to its keyword set and a minimum hit count, evaluated in
// a fixed precedence order (government, then vehicle, then business).
type rule struct {
	kind     constants.DocumentKind
	keywords []string
	minHits  int
}

var governmentKeywords = []string{
	"government of india", "aadhaar", "unique identification",
	"permanent account", "income tax", "pan card", "driving licence",
	"driving license", "transport authority", "uidai",
}

var vehicleKeywords = []string{
	"sales tax invoice", "delivery acknowledgement note",
	"customer discount declaration note", "customer exchange declaration note",
	"registration certificate", "rc", "vehicle", "chassis", "engine",
	"registration no", "regn no",
}

var businessKeywords = []string{
	"gst reg", "legal name", "trade name", "business",
	"gstin", "gst registration", "business registration", "tax registration",
}

var gstIndicators = []string{"gst reg", "gst registration", "government of india", "gstin"}
var businessTerms = []string{"legal name", "trade name", "business", "company"}

var fallbackRules = []rule{
	{kind: constants.KindGovernmentIdentity, keywords: governmentKeywords, minHits: 2},
	{kind: constants.KindVehicleDocument, keywords: vehicleKeywords, minHits: 2},
	{kind: constants.KindBusinessDocument, keywords: businessKeywords, minHits: 2},
}

var (
	rePANNumber     = regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`)
	reAadhaarNumber = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	reDLNumber      = regexp.MustCompile(`[A-Z]{2}[0-9]{2}[0-9]{11}`)
)

// Fallback classifies by keyword scoring alone. Exported so the decision
// table is testable without a gateway.
func Fallback(pageText string) Classification {
	lower := strings.ToLower(pageText)

	for _, r := range fallbackRules {
		hits := matched(lower, r.keywords)
		if len(hits) < r.minHits {
			continue
		}
		// A business classification needs both a GST indicator and a business
		// term; keyword volume alone is not enough.
		if r.kind == constants.KindBusinessDocument {
			if len(matched(lower, gstIndicators)) == 0 || len(matched(lower, businessTerms)) == 0 {
				continue
			}
		}
		return Classification{
			Kind:       r.kind,
			Subkind:    fallbackSubkind(r.kind, pageText),
			Confidence: constants.ConfidenceMedium,
			Indicators: hits,
		}
	}

	return Classification{
		Kind:       constants.KindUnknown,
		Subkind:    constants.SubkindUnknown,
		Confidence: constants.ConfidenceLow,
	}
}

func matched(lower string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

func fallbackSubkind(kind constants.DocumentKind, pageText string) constants.DocumentSubkind {
	switch kind {
	case constants.KindGovernmentIdentity:
		return governmentSubkind(pageText)
	case constants.KindVehicleDocument:
		return vehicleSubkind(pageText)
	case constants.KindBusinessDocument:
		return constants.SubkindBusinessGST
	default:
		return constants.SubkindUnknown
	}
}

func governmentSubkind(pageText string) constants.DocumentSubkind {
	upper := strings.ToUpper(pageText)
	switch {
	case containsAny(upper, "PERMANENT ACCOUNT", "INCOME TAX", "PAN CARD", "FATHER'S NAME") ||
		rePANNumber.MatchString(pageText):
		return constants.SubkindPAN
	case containsAny(upper, "AADHAAR", "UNIQUE IDENTIFICATION", "GOVERNMENT OF INDIA", "UIDAI") ||
		reAadhaarNumber.MatchString(pageText):
		return constants.SubkindAadhaar
	case containsAny(upper, "DRIVING LICENCE", "DRIVING LICENSE", "TRANSPORT AUTHORITY", "LICENSE TO DRIVE") ||
		reDLNumber.MatchString(pageText):
		return constants.SubkindDrivingLicense
	default:
		return constants.SubkindUnknown
	}
}

func vehicleSubkind(pageText string) constants.DocumentSubkind {
	upper := strings.ToUpper(pageText)
	switch {
	case containsAny(upper, "SALES TAX INVOICE", "TAX INVOICE"):
		return constants.SubkindSalesTaxInvoice
	case containsAny(upper, "DELIVERY ACKNOWLEDGEMENT", "DELIVERY ACKNOWLEDGMENT"):
		return constants.SubkindDeliveryNote
	case containsAny(upper, "CUSTOMER DISCOUNT DECLARATION", "DISCOUNT DECLARATION"):
		return constants.SubkindDiscountNote
	case containsAny(upper, "CUSTOMER EXCHANGE DECLARATION", "EXCHANGE DECLARATION"):
		return constants.SubkindExchangeNote
	case containsAny(upper, "REGISTRATION CERTIFICATE", "CERTIFICATE OF REGISTRATION", "REGN", "RC"):
		return constants.SubkindRegistrationCert
	default:
		return constants.SubkindUnknown
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

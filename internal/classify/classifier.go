// Package classify assigns each OCR'd page a document kind and sub-kind.
// The gateway is asked first; when it returns nothing usable the decision
// falls back to a fixed keyword rule table.
package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/llm"
)

// Classification is the result for one page. Classification never mutates
// prior pages; it is attached to the page by the orchestrator.
type Classification struct {
	Kind       constants.DocumentKind
	Subkind    constants.DocumentSubkind
	Confidence constants.Confidence
	Indicators []string
}

type Classifier struct {
	gw  llm.Gateway
	log *slog.Logger
}

func New(gw llm.Gateway, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{gw: gw, log: logger}
}

var knownKinds = map[string]constants.DocumentKind{
	string(constants.KindGovernmentIdentity): constants.KindGovernmentIdentity,
	string(constants.KindVehicleDocument):    constants.KindVehicleDocument,
	string(constants.KindBusinessDocument):   constants.KindBusinessDocument,
}

var knownSubkinds = map[string]constants.DocumentSubkind{
	string(constants.SubkindAadhaar):          constants.SubkindAadhaar,
	string(constants.SubkindPAN):              constants.SubkindPAN,
	string(constants.SubkindDrivingLicense):   constants.SubkindDrivingLicense,
	string(constants.SubkindSalesTaxInvoice):  constants.SubkindSalesTaxInvoice,
	string(constants.SubkindDeliveryNote):     constants.SubkindDeliveryNote,
	string(constants.SubkindDiscountNote):     constants.SubkindDiscountNote,
	string(constants.SubkindExchangeNote):     constants.SubkindExchangeNote,
	string(constants.SubkindRegistrationCert): constants.SubkindRegistrationCert,
	string(constants.SubkindBusinessGST):      constants.SubkindBusinessGST,
}

// Classify returns the kind/sub-kind/confidence for one page of OCR text.
func (c *Classifier) Classify(ctx context.Context, pageText, pageID string) Classification {
	res, err := c.gw.Infer(ctx, llm.InferRequest{
		Prompt: buildPrompt(pageText, pageID),
		PageID: pageID,
		Schema: resultSchema(),
	})
	if err == nil && !res.Empty() {
		if cls, ok := fromGateway(res); ok {
			c.log.Info("classify.page",
				"page_id", pageID, "source", "gateway",
				"kind", cls.Kind, "subkind", cls.Subkind, "confidence", cls.Confidence)
			return cls
		}
	}

	cls := Fallback(pageText)
	c.log.Info("classify.page",
		"page_id", pageID, "source", "fallback",
		"kind", cls.Kind, "subkind", cls.Subkind, "confidence", cls.Confidence,
		"indicators", strings.Join(cls.Indicators, ","))
	return cls
}

func fromGateway(res llm.Result) (Classification, bool) {
	kind, ok := knownKinds[res.Str("document_type")]
	if !ok {
		return Classification{}, false
	}
	cls := Classification{
		Kind:       kind,
		Subkind:    constants.SubkindUnknown,
		Confidence: constants.ConfidenceMedium,
		Indicators: res.Strs("indicators"),
	}
	if sub, ok := knownSubkinds[res.Str("sub_type")]; ok && subkindOf(kind, sub) {
		cls.Subkind = sub
	}
	switch res.Str("confidence") {
	case string(constants.ConfidenceHigh):
		cls.Confidence = constants.ConfidenceHigh
	case string(constants.ConfidenceLow):
		cls.Confidence = constants.ConfidenceLow
	}
	return cls, true
}

// subkindOf keeps a gateway reply from pairing a sub-kind with the wrong kind.
func subkindOf(kind constants.DocumentKind, sub constants.DocumentSubkind) bool {
	switch kind {
	case constants.KindGovernmentIdentity:
		return sub == constants.SubkindAadhaar || sub == constants.SubkindPAN || sub == constants.SubkindDrivingLicense
	case constants.KindVehicleDocument:
		return sub == constants.SubkindSalesTaxInvoice || sub == constants.SubkindDeliveryNote ||
			sub == constants.SubkindDiscountNote || sub == constants.SubkindExchangeNote ||
			sub == constants.SubkindRegistrationCert
	case constants.KindBusinessDocument:
		return sub == constants.SubkindBusinessGST
	default:
		return false
	}
}

func resultSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type": map[string]any{"type": "string"},
			"sub_type":      map[string]any{"type": "string"},
			"confidence":    map[string]any{"type": "string"},
			"indicators":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"document_type"},
	}
}

package extract

import (
	"context"
	"strings"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/llm"
	"github.com/arvind-menon/dossier/internal/validate"
)

// ExtractBusiness pulls GSTIN and company name from business-registration
// pages. The first page yielding a valid GSTIN wins; without a valid GSTIN
// the business portion stays empty.
func (e *Engine) ExtractBusiness(ctx context.Context, pages []PageText) BusinessFields {
	var out BusinessFields

	for _, p := range pages {
		if p.Kind != constants.KindBusinessDocument {
			continue
		}
		if !hasBusinessContext(p.Text) {
			continue
		}

		res, _ := e.gw.Infer(ctx, llm.InferRequest{
			Prompt: businessPrompt(p.Text),
			PageID: p.ID,
			Schema: stringSchema("gstin", "company_name"),
		})

		gstin := cascade("gstin", res.Str("gstin"), p.Text, gstinPatterns, validate.CleanGSTIN)
		if !gstin.Valid {
			continue
		}

		out.GSTINProvided = true
		out.GSTIN = gstin.CleanedValue
		out.Company = companyName(res, p.Text)
		e.log.Info("extract.business.ok", "page_id", p.ID, "company", out.Company != "")
		break
	}

	return out
}

func companyName(res llm.Result, text string) string {
	if name := res.Str("company_name"); name != "" {
		return name
	}
	for _, re := range companyPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			if len(name) > 3 {
				return name
			}
		}
	}
	return ""
}

// hasBusinessContext re-checks the conjunction the classifier requires: a GST
// indicator AND a business term. A page that slipped through classification
// without both is not mined for a GSTIN.
func hasBusinessContext(text string) bool {
	lower := strings.ToLower(text)
	gst := strings.Contains(lower, "gst reg") ||
		strings.Contains(lower, "gst registration") ||
		strings.Contains(lower, "government of india") ||
		strings.Contains(lower, "gstin")
	term := strings.Contains(lower, "legal name") ||
		strings.Contains(lower, "trade name") ||
		strings.Contains(lower, "business") ||
		strings.Contains(lower, "company")
	return gst && term
}

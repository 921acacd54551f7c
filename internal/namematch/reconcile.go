package namematch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/extract"
	"github.com/arvind-menon/dossier/internal/llm"
)

// Candidate is one page's claim about the customer's name.
type Candidate struct {
	PageID   string
	Subkind  constants.DocumentSubkind
	Identity bool
	Raw      string
	Norm     string
}

var identitySubkinds = map[constants.DocumentSubkind]struct{}{
	constants.SubkindAadhaar:        {},
	constants.SubkindPAN:            {},
	constants.SubkindDrivingLicense: {},
}

var nameDocNames = map[constants.DocumentSubkind]string{
	constants.SubkindAadhaar:          "Aadhaar card",
	constants.SubkindPAN:              "PAN card",
	constants.SubkindDrivingLicense:   "driving licence",
	constants.SubkindSalesTaxInvoice:  "sales tax invoice",
	constants.SubkindDeliveryNote:     "delivery acknowledgement note",
	constants.SubkindDiscountNote:     "customer discount declaration note",
	constants.SubkindExchangeNote:     "customer exchange declaration note",
	constants.SubkindRegistrationCert: "registration certificate",
}

// Reconciler mines name candidates page by page and elects one.
type Reconciler struct {
	gw  llm.Gateway
	log *slog.Logger
}

func NewReconciler(gw llm.Gateway, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{gw: gw, log: logger}
}

// CollectNames asks the gateway for the customer name on every page whose
// sub-kind carries one. Pages that yield nothing are skipped without error.
func (r *Reconciler) CollectNames(ctx context.Context, pages []extract.PageText) []Candidate {
	var cands []Candidate
	for _, p := range pages {
		docName, ok := nameDocNames[p.Subkind]
		if !ok {
			continue
		}
		res, _ := r.gw.Infer(ctx, llm.InferRequest{
			Prompt: namePrompt(docName, p.Text),
			PageID: p.ID,
			Schema: nameSchema(),
		})
		raw := res.Str("customer_name")
		norm := Normalize(raw)
		if norm == "" {
			continue
		}
		_, identity := identitySubkinds[p.Subkind]
		cands = append(cands, Candidate{
			PageID:   p.ID,
			Subkind:  p.Subkind,
			Identity: identity,
			Raw:      raw,
			Norm:     norm,
		})
	}
	return cands
}

// Reconcile elects the record's name. When an identity-document name agrees
// with any vehicle-document page at or above the threshold, the identity form
// wins; it is the form printed on government paper. Without such agreement
// the first vehicle-document name is taken. A bundle with no vehicle-document
// name elects nothing, identity candidates notwithstanding.
func (r *Reconciler) Reconcile(cands []Candidate) (string, bool) {
	var identity, other []Candidate
	for _, c := range cands {
		if c.Identity {
			identity = append(identity, c)
		} else {
			other = append(other, c)
		}
	}

	var best float64
	var bestID *Candidate
	for i := range identity {
		for j := range other {
			if s := Similarity(identity[i].Norm, other[j].Norm); s > best {
				best = s
				bestID = &identity[i]
			}
		}
	}

	switch {
	case bestID != nil && best >= AgreementThreshold:
		r.log.Info("namematch.agree",
			"name", bestID.Raw, "score", fmt.Sprintf("%.2f", best), "page_id", bestID.PageID)
		return bestID.Raw, true
	case len(other) > 0:
		r.log.Info("namematch.fallback", "name", other[0].Raw, "source", other[0].Subkind)
		return other[0].Raw, true
	default:
		return "", false
	}
}

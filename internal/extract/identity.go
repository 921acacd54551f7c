package extract

import (
	"context"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/llm"
	"github.com/arvind-menon/dossier/internal/validate"
)

// ExtractPersonal runs the identity-document strategies over all pages and
// returns the personal portion of the record. Later pages overwrite earlier
// ones field-by-field; registration certificates (a vehicle sub-kind)
// contribute the RC number.
func (e *Engine) ExtractPersonal(ctx context.Context, pages []PageText) PersonalFields {
	var out PersonalFields

	for _, p := range pages {
		if p.Kind != constants.KindGovernmentIdentity {
			continue
		}
		switch p.Subkind {
		case constants.SubkindAadhaar:
			e.extractAadhaar(ctx, p, &out)
		case constants.SubkindPAN:
			e.extractPAN(ctx, p, &out)
		case constants.SubkindDrivingLicense:
			e.extractDL(ctx, p, &out)
		}
	}

	for _, p := range pages {
		if p.Subkind == constants.SubkindRegistrationCert {
			e.extractRC(ctx, p, &out)
		}
	}

	return out
}

func (e *Engine) extractAadhaar(ctx context.Context, p PageText, out *PersonalFields) {
	res, _ := e.gw.Infer(ctx, llm.InferRequest{
		Prompt: aadhaarPrompt(p.Text),
		PageID: p.ID,
		Schema: stringSchema("aadhaar_number", "dob", "gender", "address", "city", "state"),
	})

	cand := cascade("aadhaar_number", res.Str("aadhaar_number"), p.Text, aadhaarPatterns, validate.CleanAadhaar)
	if cand.Valid {
		out.AadhaarProvided = true
		out.AadhaarNumber = cand.CleanedValue
		e.log.Info("extract.field.ok", "page_id", p.ID, "field", "aadhaar_number")
	}

	e.applyPersonal(p.ID, res, out)
}

func (e *Engine) extractPAN(ctx context.Context, p PageText, out *PersonalFields) {
	res, _ := e.gw.Infer(ctx, llm.InferRequest{
		Prompt: panPrompt(p.Text),
		PageID: p.ID,
		Schema: stringSchema("pan_number", "dob"),
	})

	cand := cascade("pan_number", res.Str("pan_number"), p.Text, panPatterns, validate.CleanPAN)
	if cand.Valid {
		out.PANProvided = true
		out.PANNumber = cand.CleanedValue
		e.log.Info("extract.field.ok", "page_id", p.ID, "field", "pan_number")
	}

	if dob, ok := cleanDOB(p.ID, res, e); ok {
		out.DOB = dob
	}
}

func (e *Engine) extractDL(ctx context.Context, p PageText, out *PersonalFields) {
	res, _ := e.gw.Infer(ctx, llm.InferRequest{
		Prompt: dlPrompt(p.Text),
		PageID: p.ID,
		Schema: stringSchema("dl_number", "dob", "address", "city", "state", "gender"),
	})

	cand := cascade("dl_number", res.Str("dl_number"), p.Text, dlPatterns, validate.CleanDL)
	if cand.Valid {
		out.DLProvided = true
		out.DLNumber = cand.CleanedValue
		e.log.Info("extract.field.ok", "page_id", p.ID, "field", "dl_number")
	}

	e.applyPersonal(p.ID, res, out)
}

func (e *Engine) extractRC(ctx context.Context, p PageText, out *PersonalFields) {
	res, _ := e.gw.Infer(ctx, llm.InferRequest{
		Prompt: rcPrompt(p.Text),
		PageID: p.ID,
		Schema: stringSchema("rc_number"),
	})

	cand := cascade("vehicle_rc", res.Str("rc_number"), p.Text, rcPatterns, validate.CleanRC)
	if cand.Valid {
		out.RCProvided = true
		out.VehicleRC = cand.CleanedValue
		e.log.Info("extract.field.ok", "page_id", p.ID, "field", "vehicle_rc")
	}
}

// applyPersonal copies the soft fields (dob, gender, address, city, state)
// shared by the Aadhaar and DL strategies.
func (e *Engine) applyPersonal(pageID string, res llm.Result, out *PersonalFields) {
	if dob, ok := cleanDOB(pageID, res, e); ok {
		out.DOB = dob
	}
	if g := res.Str("gender"); g != "" {
		out.Gender = validate.CleanGender(g)
	}
	if v := res.Str("address"); v != "" {
		out.Address = v
	}
	if v := res.Str("city"); v != "" {
		out.City = v
	}
	if v := res.Str("state"); v != "" {
		out.State = v
	}
}

func cleanDOB(pageID string, res llm.Result, e *Engine) (string, bool) {
	raw := res.Str("dob")
	if raw == "" {
		return "", false
	}
	dob, ok := validate.CleanDate(raw)
	if !ok {
		// logged, not fatal: an unparseable date is dropped
		e.log.Warn("extract.dob.unparseable", "page_id", pageID, "raw", raw)
		return "", false
	}
	return dob, true
}

package extract

import (
	"context"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/llm"
	"github.com/arvind-menon/dossier/internal/validate"
)

var vehicleDocNames = map[constants.DocumentSubkind]string{
	constants.SubkindSalesTaxInvoice: "Sales Tax Invoice",
	constants.SubkindDeliveryNote:    "Delivery Acknowledgement Note",
	constants.SubkindDiscountNote:    "Customer Discount Declaration Note",
	constants.SubkindExchangeNote:    "Customer Exchange Declaration Note",
}

// ExtractVehicle pulls VIN/engine blobs from vehicle purchase documents.
// Pages are processed in order, so when a sub-kind repeats the last valid
// extraction overwrites the earlier one.
func (e *Engine) ExtractVehicle(ctx context.Context, pages []PageText) VehicleBlobs {
	var out VehicleBlobs

	for _, p := range pages {
		if p.Kind != constants.KindVehicleDocument {
			continue
		}
		docName, ok := vehicleDocNames[p.Subkind]
		if !ok {
			continue
		}
		blob := e.extractVehicleDoc(ctx, p, docName)
		if blob == nil {
			continue
		}
		switch p.Subkind {
		case constants.SubkindSalesTaxInvoice:
			out.TaxInvoice = blob
		case constants.SubkindDeliveryNote:
			out.DAN = blob
		case constants.SubkindDiscountNote:
			out.CDDN = blob
		}
		// exchange notes are classified and mined for names, but the record
		// schema has no slot for their blob
	}

	return out
}

// extractVehicleDoc returns a blob with at least one of vin/engine set, or
// nil when neither survives validation. VIN and chassis number are the same
// physical value, so both keys always carry the one validated string.
func (e *Engine) extractVehicleDoc(ctx context.Context, p PageText, docName string) map[string]any {
	res, _ := e.gw.Infer(ctx, llm.InferRequest{
		Prompt: vehiclePrompt(docName, p.Text),
		PageID: p.ID,
		Schema: stringSchema("vin_number", "chassis_number", "engine_number"),
	})

	rawVIN := res.Str("vin_number")
	if rawVIN == "" {
		rawVIN = res.Str("chassis_number")
	}
	vin := cascade("vin_number", rawVIN, p.Text, vinPatterns, validate.CleanVIN)
	engine := cascade("engine_number", res.Str("engine_number"), p.Text, enginePatterns, validate.CleanEngine)

	if !vin.Valid && !engine.Valid {
		return nil
	}

	blob := map[string]any{
		"vin_number":     nil,
		"chassis_number": nil,
		"engine_number":  nil,
	}
	if vin.Valid {
		blob["vin_number"] = vin.CleanedValue
		blob["chassis_number"] = vin.CleanedValue
	}
	if engine.Valid {
		blob["engine_number"] = engine.CleanedValue
	}
	e.log.Info("extract.vehicle.ok",
		"page_id", p.ID, "subkind", p.Subkind,
		"vin", vin.Valid, "engine", engine.Valid)
	return blob
}

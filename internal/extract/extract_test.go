package extract

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/llm"
	"github.com/arvind-menon/dossier/internal/validate"
)

type fakeGateway struct {
	byPage map[string]llm.Result
}

func (f *fakeGateway) Infer(_ context.Context, req llm.InferRequest) (llm.Result, error) {
	if r, ok := f.byPage[req.PageID]; ok {
		return r, nil
	}
	return llm.Result{}, nil
}

func newTestEngine(byPage map[string]llm.Result) *Engine {
	return NewEngine(&fakeGateway{byPage: byPage}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCascadeGatewayValueWins(t *testing.T) {
	cand := cascade("pan_number", "abcde1234f", "PAN No: ZZZZZ9999Z", panPatterns, validate.CleanPAN)
	require.True(t, cand.Valid)
	assert.Equal(t, "ABCDE1234F", cand.CleanedValue)
	assert.Equal(t, "abcde1234f", cand.RawValue)
}

func TestCascadeFallsBackToText(t *testing.T) {
	cand := cascade("pan_number", "not-a-pan", "PAN No: ABCDE1234F", panPatterns, validate.CleanPAN)
	require.True(t, cand.Valid)
	assert.Equal(t, "ABCDE1234F", cand.CleanedValue)
}

func TestCascadeNothingMatches(t *testing.T) {
	cand := cascade("pan_number", "", "no identifiers here", panPatterns, validate.CleanPAN)
	assert.False(t, cand.Valid)
	assert.Empty(t, cand.CleanedValue)
}

func TestExtractPersonalAadhaarTextFallback(t *testing.T) {
	// the gateway misses the number but the page carries a labeled one
	e := newTestEngine(map[string]llm.Result{
		"p1": {"dob": "15/08/1991", "gender": "M", "city": "Pune"},
	})
	out := e.ExtractPersonal(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "Government of India\nAadhaar No: 2345 6789 0123",
		Kind:    constants.KindGovernmentIdentity,
		Subkind: constants.SubkindAadhaar,
	}})

	require.True(t, out.AadhaarProvided)
	assert.Equal(t, "234567890123", out.AadhaarNumber)
	assert.Equal(t, "1991-08-15", out.DOB)
	assert.Equal(t, "Male", out.Gender)
	assert.Equal(t, "Pune", out.City)
}

func TestExtractPersonalUnparseableDOBDropped(t *testing.T) {
	e := newTestEngine(map[string]llm.Result{
		"p1": {"pan_number": "ABCDE1234F", "dob": "sometime in the nineties"},
	})
	out := e.ExtractPersonal(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "income tax department",
		Kind:    constants.KindGovernmentIdentity,
		Subkind: constants.SubkindPAN,
	}})

	require.True(t, out.PANProvided)
	assert.Equal(t, "ABCDE1234F", out.PANNumber)
	assert.Empty(t, out.DOB)
}

func TestExtractPersonalDLNumber(t *testing.T) {
	e := newTestEngine(nil)
	out := e.ExtractPersonal(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "driving licence\nDL No: MH1420110012345",
		Kind:    constants.KindGovernmentIdentity,
		Subkind: constants.SubkindDrivingLicense,
	}})

	require.True(t, out.DLProvided)
	assert.Equal(t, "MH1420110012345", out.DLNumber)
}

func TestExtractPersonalRCFromRegistrationCert(t *testing.T) {
	e := newTestEngine(nil)
	out := e.ExtractPersonal(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "certificate of registration\nRegn No: MH12AB1234",
		Kind:    constants.KindVehicleDocument,
		Subkind: constants.SubkindRegistrationCert,
	}})

	require.True(t, out.RCProvided)
	assert.Equal(t, "MH12AB1234", out.VehicleRC)
}

func TestExtractVehicleChassisFillsVIN(t *testing.T) {
	e := newTestEngine(map[string]llm.Result{
		"p1": {"chassis_number": "MA1TA2BC3DE456789", "engine_number": "EN12345678"},
	})
	out := e.ExtractVehicle(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "invoice text",
		Kind:    constants.KindVehicleDocument,
		Subkind: constants.SubkindSalesTaxInvoice,
	}})

	require.NotNil(t, out.TaxInvoice)
	assert.Equal(t, "MA1TA2BC3DE456789", out.TaxInvoice["vin_number"])
	assert.Equal(t, "MA1TA2BC3DE456789", out.TaxInvoice["chassis_number"])
	assert.Equal(t, "EN12345678", out.TaxInvoice["engine_number"])
}

func TestExtractVehicleLastValidWins(t *testing.T) {
	e := newTestEngine(map[string]llm.Result{
		"p1": {"vin_number": "MA1TA2BC3DE456789"},
		"p2": {"vin_number": "MB1TA2BC3DE456780"},
	})
	out := e.ExtractVehicle(context.Background(), []PageText{
		{ID: "p1", Text: "first invoice", Kind: constants.KindVehicleDocument, Subkind: constants.SubkindSalesTaxInvoice},
		{ID: "p2", Text: "second invoice", Kind: constants.KindVehicleDocument, Subkind: constants.SubkindSalesTaxInvoice},
		{ID: "p3", Text: "blank page", Kind: constants.KindVehicleDocument, Subkind: constants.SubkindSalesTaxInvoice},
	})

	require.NotNil(t, out.TaxInvoice)
	assert.Equal(t, "MB1TA2BC3DE456780", out.TaxInvoice["vin_number"])
}

func TestExtractVehicleNeitherValueSkipsPage(t *testing.T) {
	e := newTestEngine(nil)
	out := e.ExtractVehicle(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "delivery note without identifiers",
		Kind:    constants.KindVehicleDocument,
		Subkind: constants.SubkindDeliveryNote,
	}})

	assert.Nil(t, out.DAN)
	assert.Nil(t, out.TaxInvoice)
	assert.Nil(t, out.CDDN)
}

func TestExtractVehicleExchangeNoteHasNoSlot(t *testing.T) {
	e := newTestEngine(map[string]llm.Result{
		"p1": {"vin_number": "MA1TA2BC3DE456789"},
	})
	out := e.ExtractVehicle(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "exchange paperwork",
		Kind:    constants.KindVehicleDocument,
		Subkind: constants.SubkindExchangeNote,
	}})

	assert.Nil(t, out.TaxInvoice)
	assert.Nil(t, out.DAN)
	assert.Nil(t, out.CDDN)
}

func TestExtractBusinessGSTINFromText(t *testing.T) {
	e := newTestEngine(map[string]llm.Result{
		"p1": {"company_name": "Acme Motors Pvt Ltd"},
	})
	out := e.ExtractBusiness(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "GST Registration Certificate\nGSTIN: 27ABCDE1234F1Z5\nlegal name of business",
		Kind:    constants.KindBusinessDocument,
		Subkind: constants.SubkindBusinessGST,
	}})

	require.True(t, out.GSTINProvided)
	assert.Equal(t, "27ABCDE1234F1Z5", out.GSTIN)
	assert.Equal(t, "Acme Motors Pvt Ltd", out.Company)
}

func TestExtractBusinessFirstValidGSTINWins(t *testing.T) {
	e := newTestEngine(map[string]llm.Result{
		"p1": {"gstin": "27ABCDE1234F1Z5", "company_name": "Acme Motors"},
		"p2": {"gstin": "29FGHIJ5678K2Z9", "company_name": "Other Traders"},
	})
	pages := []PageText{
		{ID: "p1", Text: "gst registration for the business", Kind: constants.KindBusinessDocument, Subkind: constants.SubkindBusinessGST},
		{ID: "p2", Text: "gst registration for the business", Kind: constants.KindBusinessDocument, Subkind: constants.SubkindBusinessGST},
	}
	out := e.ExtractBusiness(context.Background(), pages)

	require.True(t, out.GSTINProvided)
	assert.Equal(t, "27ABCDE1234F1Z5", out.GSTIN)
	assert.Equal(t, "Acme Motors", out.Company)
}

func TestExtractBusinessRequiresContext(t *testing.T) {
	// a GSTIN-looking string without business context is not mined
	e := newTestEngine(nil)
	out := e.ExtractBusiness(context.Background(), []PageText{{
		ID:      "p1",
		Text:    "GSTIN: 27ABCDE1234F1Z5 tax registration",
		Kind:    constants.KindBusinessDocument,
		Subkind: constants.SubkindBusinessGST,
	}})

	assert.False(t, out.GSTINProvided)
	assert.Empty(t, out.GSTIN)
}

func TestCompanyNameTextFallback(t *testing.T) {
	name := companyName(llm.Result{}, "certificate\nTrade Name: BRIGHT WHEELS")
	assert.Equal(t, "BRIGHT WHEELS", name)
}

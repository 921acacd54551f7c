package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/llm"
)

type fakeGateway struct {
	res llm.Result
}

func (f fakeGateway) Infer(_ context.Context, _ llm.InferRequest) (llm.Result, error) {
	return f.res, nil
}

func TestClassify_UsesGatewayResult(t *testing.T) {
	c := New(fakeGateway{res: llm.Result{
		"document_type": "government_identity",
		"sub_type":      "pan",
		"confidence":    "high",
		"indicators":    []any{"PAN CARD"},
	}}, nil)

	cls := c.Classify(context.Background(), "whatever", "page_1")
	assert.Equal(t, constants.KindGovernmentIdentity, cls.Kind)
	assert.Equal(t, constants.SubkindPAN, cls.Subkind)
	assert.Equal(t, constants.ConfidenceHigh, cls.Confidence)
	assert.Equal(t, []string{"PAN CARD"}, cls.Indicators)
}

func TestClassify_MismatchedSubkindDemotedToUnknown(t *testing.T) {
	c := New(fakeGateway{res: llm.Result{
		"document_type": "government_identity",
		"sub_type":      "sales_tax_invoice", // vehicle sub-kind on identity kind
	}}, nil)

	cls := c.Classify(context.Background(), "", "page_1")
	assert.Equal(t, constants.KindGovernmentIdentity, cls.Kind)
	assert.Equal(t, constants.SubkindUnknown, cls.Subkind)
}

func TestClassify_EmptyGatewayFallsBack(t *testing.T) {
	c := New(fakeGateway{res: llm.Result{}}, nil)

	text := "GOVERNMENT OF INDIA\nAADHAAR\n1234 5678 9012"
	cls := c.Classify(context.Background(), text, "page_1")
	assert.Equal(t, constants.KindGovernmentIdentity, cls.Kind)
	assert.Equal(t, constants.SubkindAadhaar, cls.Subkind)
	assert.Equal(t, constants.ConfidenceMedium, cls.Confidence)
}

func TestFallback_GovernmentPrecedenceOverVehicle(t *testing.T) {
	// two hits for each kind; government wins on precedence
	text := "government of india uidai vehicle engine"
	cls := Fallback(text)
	assert.Equal(t, constants.KindGovernmentIdentity, cls.Kind)
}

func TestFallback_SingleHitIsUnknown(t *testing.T) {
	cls := Fallback("this page mentions a vehicle once")
	assert.Equal(t, constants.KindUnknown, cls.Kind)
	assert.Equal(t, constants.ConfidenceLow, cls.Confidence)
}

func TestFallback_BusinessNeedsGSTAndBusinessTerm(t *testing.T) {
	// two business keywords but no GST indicator
	cls := Fallback("legal name and trade name appear here")
	assert.NotEqual(t, constants.KindBusinessDocument, cls.Kind)

	cls = Fallback("GST Reg certificate, Legal Name: ACME MOTORS")
	assert.Equal(t, constants.KindBusinessDocument, cls.Kind)
	assert.Equal(t, constants.SubkindBusinessGST, cls.Subkind)
}

func TestFallback_VehicleSubkinds(t *testing.T) {
	cases := map[string]constants.DocumentSubkind{
		"SALES TAX INVOICE for vehicle chassis":                   constants.SubkindSalesTaxInvoice,
		"DELIVERY ACKNOWLEDGEMENT NOTE vehicle chassis":           constants.SubkindDeliveryNote,
		"CUSTOMER DISCOUNT DECLARATION NOTE vehicle chassis":      constants.SubkindDiscountNote,
		"CUSTOMER EXCHANGE DECLARATION NOTE vehicle chassis":      constants.SubkindExchangeNote,
		"REGISTRATION CERTIFICATE vehicle chassis regn no AB1234": constants.SubkindRegistrationCert,
	}
	for text, want := range cases {
		cls := Fallback(text)
		assert.Equal(t, constants.KindVehicleDocument, cls.Kind, "text %q", text)
		assert.Equal(t, want, cls.Subkind, "text %q", text)
	}
}

func TestFallback_GovernmentSubkindByPattern(t *testing.T) {
	// no PAN keywords, but a PAN-shaped number plus two government keywords
	cls := Fallback("income tax department government of india ABCDE1234F")
	assert.Equal(t, constants.KindGovernmentIdentity, cls.Kind)
	assert.Equal(t, constants.SubkindPAN, cls.Subkind)

	cls = Fallback("driving licence transport authority MH1220110012345")
	assert.Equal(t, constants.SubkindDrivingLicense, cls.Subkind)
}

func TestFallback_ReportsIndicators(t *testing.T) {
	cls := Fallback("government of india uidai")
	assert.Contains(t, cls.Indicators, "government of india")
	assert.Contains(t, cls.Indicators, "uidai")
}

package constants

// DocumentKind is the top level of the two-level document taxonomy.
type DocumentKind string

// Stable values (these exact strings appear in gateway replies and logs).
const (
	KindGovernmentIdentity DocumentKind = "government_identity"
	KindVehicleDocument    DocumentKind = "vehicle_document"
	KindBusinessDocument   DocumentKind = "business_document"
	KindUnknown            DocumentKind = "unknown"
)

// DocumentSubkind refines a DocumentKind.
type DocumentSubkind string

const (
	SubkindAadhaar          DocumentSubkind = "aadhaar"
	SubkindPAN              DocumentSubkind = "pan"
	SubkindDrivingLicense   DocumentSubkind = "driving_license"
	SubkindSalesTaxInvoice  DocumentSubkind = "sales_tax_invoice"
	SubkindDeliveryNote     DocumentSubkind = "delivery_acknowledgement_note"
	SubkindDiscountNote     DocumentSubkind = "customer_discount_declaration_note"
	SubkindExchangeNote     DocumentSubkind = "customer_exchange_declaration_note"
	SubkindRegistrationCert DocumentSubkind = "registration_certificate"
	SubkindBusinessGST      DocumentSubkind = "business_gst"
	SubkindUnknown          DocumentSubkind = "unknown"
)

// Confidence is the classifier's coarse certainty level.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

package entity

// CustomerRecord is the one persisted row representing everything extracted
// for a single source file. Optional fields are pointers so absent values
// serialize as JSON null, matching the customers table columns one-to-one.
type CustomerRecord struct {
	Filename string  `json:"filename"`
	Name     *string `json:"name"`
	DOB      *string `json:"dob"` // YYYY-MM-DD
	Gender   *string `json:"gender"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`

	AadhaarProvided bool    `json:"aadhaar_provided"`
	AadhaarNumber   *string `json:"aadhaar_number"`
	PANProvided     bool    `json:"pan_provided"`
	PANNumber       *string `json:"pan_number"`
	DLProvided      bool    `json:"dl_provided"`
	DLNumber        *string `json:"dl_number"`
	RCProvided      bool    `json:"rc_provided"`
	VehicleRC       *string `json:"vehicle_rc"`

	GSTINProvided bool    `json:"gstin_provided"`
	GSTIN         *string `json:"gstin"`
	GSTCompany    *string `json:"gst_company"`

	TaxInvoice map[string]any `json:"tax_invoice"`
	DAN        map[string]any `json:"dan"`
	CDDN       map[string]any `json:"cddn"`
}

// Package assemble folds the per-strategy extraction results into one
// CustomerRecord. It is a pure mapping step: no inference, no validation,
// no I/O. A field nobody extracted stays nil or false.
package assemble

import (
	"github.com/arvind-menon/dossier/internal/entity"
	"github.com/arvind-menon/dossier/internal/extract"
)

// Assemble builds the record for one source file. The name is passed
// separately because it is elected across pages, not extracted from one.
func Assemble(filename string, personal extract.PersonalFields, vehicle extract.VehicleBlobs, business extract.BusinessFields, name string) *entity.CustomerRecord {
	rec := &entity.CustomerRecord{
		Filename: filename,
		Name:     optional(name),
		DOB:      optional(personal.DOB),
		Gender:   optional(personal.Gender),
		Address:  optional(personal.Address),
		City:     optional(personal.City),
		State:    optional(personal.State),

		AadhaarProvided: personal.AadhaarProvided,
		AadhaarNumber:   optional(personal.AadhaarNumber),
		PANProvided:     personal.PANProvided,
		PANNumber:       optional(personal.PANNumber),
		DLProvided:      personal.DLProvided,
		DLNumber:        optional(personal.DLNumber),
		RCProvided:      personal.RCProvided,
		VehicleRC:       optional(personal.VehicleRC),

		GSTINProvided: business.GSTINProvided,
		GSTIN:         optional(business.GSTIN),
		GSTCompany:    optional(business.Company),

		TaxInvoice: vehicle.TaxInvoice,
		DAN:        vehicle.DAN,
		CDDN:       vehicle.CDDN,
	}
	return rec
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

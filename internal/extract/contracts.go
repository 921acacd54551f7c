// Package extract turns classified pages into validated field values. Every
// strategy follows the same cascade: ask the gateway for the fields its
// sub-kind implies, clean and validate the answers, and fall back to direct
// pattern search over the raw page text when the gateway comes up short.
// A field that survives neither step is an accepted gap, not an error.
package extract

import (
	"log/slog"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/llm"
)

// PageText is the read-only view of one classified page that strategies get.
type PageText struct {
	ID      string
	Text    string
	Kind    constants.DocumentKind
	Subkind constants.DocumentSubkind
}

// FieldCandidate records one extraction attempt for one (page, field) pair.
// At most one candidate per pair survives; only valid candidates reach the
// record.
type FieldCandidate struct {
	FieldName    string
	RawValue     string
	CleanedValue string
	Valid        bool
}

// PersonalFields is the identity-document strategies' portion of the record.
type PersonalFields struct {
	DOB     string
	Gender  string
	Address string
	City    string
	State   string

	AadhaarProvided bool
	AadhaarNumber   string
	PANProvided     bool
	PANNumber       string
	DLProvided      bool
	DLNumber        string
	RCProvided      bool
	VehicleRC       string
}

// VehicleBlobs holds the per-subkind structured blobs from vehicle paperwork.
// Multiple pages may repeat a sub-kind; the last valid extraction wins.
type VehicleBlobs struct {
	TaxInvoice map[string]any
	DAN        map[string]any
	CDDN       map[string]any
}

// BusinessFields is the business-registration strategy's portion.
type BusinessFields struct {
	GSTINProvided bool
	GSTIN         string
	Company       string
}

// Engine runs one strategy per (kind, sub-kind). It holds only the two
// immutable collaborators every strategy shares: the gateway handle and the
// logger. The compiled fallback patterns are package-level and never mutated.
type Engine struct {
	gw  llm.Gateway
	log *slog.Logger
}

func NewEngine(gw llm.Gateway, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{gw: gw, log: logger}
}

package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arvind-menon/dossier/internal/repository"
)

// Service is a tiny façade over the repository that produces XLSX bytes for
// operator exports of the canonical customer records.
type Service struct {
	repo   repository.CustomerRepository
	logger *slog.Logger
}

func NewService(repo repository.CustomerRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportCustomersXLSX returns an XLSX workbook (as bytes) with one row per
// persisted record. Blob columns are serialized to compact JSON.
func (s *Service) ExportCustomersXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Customers"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Filename",
		"Name",
		"DOB",
		"Gender",
		"Address",
		"City",
		"State",
		"Aadhaar",
		"PAN",
		"DL",
		"Vehicle RC",
		"GSTIN",
		"GST Company",
		"Tax Invoice",
		"DAN",
		"CDDN",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Filename)
		write(2, deref(r.Name))
		write(3, deref(r.DOB))
		write(4, deref(r.Gender))
		write(5, deref(r.Address))
		write(6, deref(r.City))
		write(7, deref(r.State))
		write(8, provided(r.AadhaarProvided, r.AadhaarNumber))
		write(9, provided(r.PANProvided, r.PANNumber))
		write(10, provided(r.DLProvided, r.DLNumber))
		write(11, provided(r.RCProvided, r.VehicleRC))
		write(12, provided(r.GSTINProvided, r.GSTIN))
		write(13, deref(r.GSTCompany))
		write(14, blobJSON(r.TaxInvoice))
		write(15, blobJSON(r.DAN))
		write(16, blobJSON(r.CDDN))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 28) // filename
	_ = f.SetColWidth(sheet, "B", "B", 24) // name
	_ = f.SetColWidth(sheet, "E", "E", 40) // address
	_ = f.SetColWidth(sheet, "H", "M", 18) // identifiers
	_ = f.SetColWidth(sheet, "N", "P", 48) // blobs

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// provided renders an identifier column: the number when present, "yes" when
// the document was seen without a usable number, empty otherwise.
func provided(flag bool, number *string) string {
	switch {
	case number != nil:
		return *number
	case flag:
		return "yes"
	default:
		return ""
	}
}

func blobJSON(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arvind-menon/dossier/internal/common"
	"github.com/arvind-menon/dossier/internal/entity"
)

// DB is the slice of pgxpool.Pool the repository needs. pgxmock satisfies it
// too, which is how the repository is tested without a server.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CustomerRepository persists one row per processed source file.
type CustomerRepository interface {
	// InsertPlaceholder claims a filename. It reports false when the row
	// already exists, which is the signal to skip reprocessing.
	InsertPlaceholder(ctx context.Context, filename string) (bool, error)
	// UpdateRecord fills the claimed row and returns the rows affected;
	// zero means the placeholder is missing.
	UpdateRecord(ctx context.Context, rec *entity.CustomerRecord) (int64, error)
	ListRecords(ctx context.Context) ([]*entity.CustomerRecord, error)
}

type customerRepository struct {
	db  DB
	log *slog.Logger
}

func NewCustomerRepository(db DB, logger *slog.Logger) CustomerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &customerRepository{db: db, log: logger}
}

const insertPlaceholderSQL = `
INSERT INTO customers (filename)
VALUES ($1)
ON CONFLICT (filename) DO NOTHING`

func (r *customerRepository) InsertPlaceholder(ctx context.Context, filename string) (bool, error) {
	tag, err := r.db.Exec(ctx, insertPlaceholderSQL, filename)
	if err != nil {
		r.log.Error("db.placeholder.insert", "filename", filename, "error", err)
		return false, common.NewAppError("DB_ERROR", "failed to insert placeholder", err)
	}
	inserted := tag.RowsAffected() == 1
	r.log.Info("db.placeholder.insert", "filename", filename, "inserted", inserted)
	return inserted, nil
}

const updateRecordSQL = `
UPDATE customers SET
	name = $2,
	dob = $3,
	gender = $4,
	address = $5,
	city = $6,
	state = $7,
	aadhaar_provided = $8,
	aadhaar_number = $9,
	pan_provided = $10,
	pan_number = $11,
	dl_provided = $12,
	dl_number = $13,
	rc_provided = $14,
	vehicle_rc = $15,
	gstin_provided = $16,
	gstin = $17,
	gst_company = $18,
	tax_invoice = $19,
	dan = $20,
	cddn = $21,
	updated_at = now()
WHERE filename = $1`

func (r *customerRepository) UpdateRecord(ctx context.Context, rec *entity.CustomerRecord) (int64, error) {
	tag, err := r.db.Exec(ctx, updateRecordSQL,
		rec.Filename,
		rec.Name, rec.DOB, rec.Gender, rec.Address, rec.City, rec.State,
		rec.AadhaarProvided, rec.AadhaarNumber,
		rec.PANProvided, rec.PANNumber,
		rec.DLProvided, rec.DLNumber,
		rec.RCProvided, rec.VehicleRC,
		rec.GSTINProvided, rec.GSTIN, rec.GSTCompany,
		rec.TaxInvoice, rec.DAN, rec.CDDN,
	)
	if err != nil {
		r.log.Error("db.record.update", "filename", rec.Filename, "error", err)
		return 0, common.NewAppError("DB_ERROR", "failed to update record", err)
	}
	r.log.Info("db.record.update", "filename", rec.Filename, "rows", tag.RowsAffected())
	return tag.RowsAffected(), nil
}

const listRecordsSQL = `
SELECT filename, name, dob, gender, address, city, state,
	aadhaar_provided, aadhaar_number, pan_provided, pan_number,
	dl_provided, dl_number, rc_provided, vehicle_rc,
	gstin_provided, gstin, gst_company,
	tax_invoice, dan, cddn
FROM customers
ORDER BY filename`

func (r *customerRepository) ListRecords(ctx context.Context) ([]*entity.CustomerRecord, error) {
	rows, err := r.db.Query(ctx, listRecordsSQL)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to list records", err)
	}
	defer rows.Close()

	var out []*entity.CustomerRecord
	for rows.Next() {
		rec := new(entity.CustomerRecord)
		err := rows.Scan(
			&rec.Filename, &rec.Name, &rec.DOB, &rec.Gender, &rec.Address, &rec.City, &rec.State,
			&rec.AadhaarProvided, &rec.AadhaarNumber, &rec.PANProvided, &rec.PANNumber,
			&rec.DLProvided, &rec.DLNumber, &rec.RCProvided, &rec.VehicleRC,
			&rec.GSTINProvided, &rec.GSTIN, &rec.GSTCompany,
			&rec.TaxInvoice, &rec.DAN, &rec.CDDN,
		)
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "failed to scan record", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to read records", err)
	}
	return out, nil
}

package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/ramprice"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compile-time interface verification.
var _ ramprice.RecordService = (*RecordService)(nil)

// RecordService implements ramprice.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRecords stores records in one transaction. Records whose date, module
// type, store and shorthand are already stored are ignored.
func (s *RecordService) CreateRecords(ctx context.Context, records []ramprice.PriceRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO records (id, fingerprint, date, module_type, store, module_count, unit_size_gb, unit_price, brand, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	added := 0
	for _, r := range records {
		result, err := stmt.ExecContext(ctx,
			uuid.New().String(), fingerprint(r), r.Date().String(), r.ModuleType(), r.Store(),
			r.ModuleCount(), r.UnitSizeGB(), r.UnitPrice().String(), r.Brand(), now)
		if err != nil {
			return 0, fmt.Errorf("insert record %q: %w", r.String(), err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// FindRecords retrieves records matching the filter, ordered by date, module
// type, store and insertion order.
func (s *RecordService) FindRecords(ctx context.Context, filter ramprice.RecordFilter) ([]ramprice.PriceRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT date, module_type, store, module_count, unit_size_gb, unit_price, brand FROM records WHERE 1=1")

	if filter.From != nil {
		query.WriteString(" AND date >= ?")
		args = append(args, filter.From.String())
	}
	if filter.To != nil {
		query.WriteString(" AND date <= ?")
		args = append(args, filter.To.String())
	}
	if filter.ModuleType != nil {
		query.WriteString(" AND module_type = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*filter.ModuleType)))
	}
	if filter.Store != nil {
		query.WriteString(" AND store = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*filter.Store)))
	}
	if filter.UnitSizeGB != nil {
		query.WriteString(" AND unit_size_gb = ?")
		args = append(args, *filter.UnitSizeGB)
	}

	query.WriteString(" ORDER BY date, module_type, store, rowid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ramprice.PriceRecord
	for rows.Next() {
		var date, moduleType, store, price, brand string
		var count, size int
		if err := rows.Scan(&date, &moduleType, &store, &count, &size, &price, &brand); err != nil {
			return nil, err
		}

		r, err := scanRecord(date, moduleType, store, count, size, price, brand)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// scanRecord rebuilds a stored row through the record validator.
func scanRecord(date, moduleType, store string, count, size int, price, brand string) (ramprice.PriceRecord, error) {
	d, err := ramprice.ParseDate(date)
	if err != nil {
		return ramprice.PriceRecord{}, ramprice.Errorf(ramprice.EINTERNAL, "stored record has invalid date %q", date)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return ramprice.PriceRecord{}, ramprice.Errorf(ramprice.EINTERNAL, "stored record has invalid price %q", price)
	}
	r, err := ramprice.NewPriceRecord(d, moduleType, store, count, size, p, brand)
	if err != nil {
		return ramprice.PriceRecord{}, fmt.Errorf("stored record failed validation: %w", err)
	}
	return r, nil
}

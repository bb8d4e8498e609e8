package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/salesworks/salespipe/internal/domain"
)

// RunRepo stores pipeline runs and their enriched transactions.
type RunRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// InsertRun stores one run summary together with its report payload.
func (r *RunRepo) InsertRun(run *domain.Run, reportJSON []byte) error {
	_, err := r.db.Exec(
		`INSERT INTO runs
		(id, started_at, input_file, total_input, invalid, valid_records,
		 filtered_by_region, filtered_by_amount, final_count, total_revenue,
		 enrich_attempted, enrich_matched, enrich_success_rate, report_json)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.Format(time.RFC3339), run.InputFile,
		run.TotalInput, run.Invalid, run.ValidRecords,
		run.FilteredByRegion, run.FilteredByAmount, run.FinalCount,
		run.TotalRevenue, run.EnrichAttempted, run.EnrichMatched,
		run.EnrichSuccessRate, string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// BulkInsertEnriched stores the enriched dataset of one run.
func (r *RunRepo) BulkInsertEnriched(runID string, rows []domain.EnrichedTransaction) (int, error) {
	sqlTx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	stmt, err := sqlTx.Prepare(
		`INSERT INTO enriched_transactions
		(run_id, transaction_id, date, product_id, product_name, quantity,
		 unit_price, customer_id, region, api_category, api_brand,
		 api_rating, api_match)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i := range rows {
		e := &rows[i]
		_, err := stmt.Exec(
			runID, e.TransactionID, e.Date, e.ProductID, e.ProductName,
			e.Quantity, e.UnitPrice, e.CustomerID, e.Region,
			nullableString(e.APICategory), nullableString(e.APIBrand),
			nullableFloat(e.APIRating), boolToInt(e.APIMatch),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		inserted++
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// ListRuns returns up to limit runs, newest first.
func (r *RunRepo) ListRuns(limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, started_at, input_file, total_input, invalid,
		        valid_records, filtered_by_region, filtered_by_amount,
		        final_count, total_revenue, enrich_attempted, enrich_matched,
		        enrich_success_rate
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns one run summary, or sql.ErrNoRows if it does not exist.
func (r *RunRepo) GetRun(id string) (*domain.Run, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, input_file, total_input, invalid,
		        valid_records, filtered_by_region, filtered_by_amount,
		        final_count, total_revenue, enrich_attempted, enrich_matched,
		        enrich_success_rate
		 FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	return scanRun(rows)
}

// GetReportJSON returns the stored report payload of one run.
func (r *RunRepo) GetReportJSON(id string) ([]byte, error) {
	var payload string
	err := r.db.QueryRow("SELECT report_json FROM runs WHERE id = ?", id).Scan(&payload)
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// EnrichedFilter narrows and pages the enriched rows of a run.
type EnrichedFilter struct {
	Region string
	Match  *bool
	Page   int
	Limit  int
}

// ListEnriched returns one page of a run's enriched transactions together
// with the total count matching the filter.
func (r *RunRepo) ListEnriched(runID string, f EnrichedFilter) ([]domain.EnrichedTransaction, int, error) {
	where, args := buildEnrichedWhere(runID, f)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM enriched_transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	offset := (f.Page - 1) * f.Limit

	query := `SELECT transaction_id, date, product_id, product_name,
	                 quantity, unit_price, customer_id, region,
	                 api_category, api_brand, api_rating, api_match
	          FROM enriched_transactions` + where + " ORDER BY rowid LIMIT ? OFFSET ?"
	args = append(args, f.Limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []domain.EnrichedTransaction
	for rows.Next() {
		var e domain.EnrichedTransaction
		var category, brand sql.NullString
		var rating sql.NullFloat64
		var match int

		err := rows.Scan(
			&e.TransactionID, &e.Date, &e.ProductID, &e.ProductName,
			&e.Quantity, &e.UnitPrice, &e.CustomerID, &e.Region,
			&category, &brand, &rating, &match,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}

		if category.Valid {
			e.APICategory = &category.String
		}
		if brand.Valid {
			e.APIBrand = &brand.String
		}
		if rating.Valid {
			e.APIRating = &rating.Float64
		}
		e.APIMatch = match != 0

		out = append(out, e)
	}
	return out, total, rows.Err()
}

// --- helpers ---

func buildEnrichedWhere(runID string, f EnrichedFilter) (string, []any) {
	clauses := []string{"run_id = ?"}
	args := []any{runID}

	if f.Region != "" {
		clauses = append(clauses, "LOWER(region) = LOWER(?)")
		args = append(args, strings.TrimSpace(f.Region))
	}
	if f.Match != nil {
		clauses = append(clauses, "api_match = ?")
		args = append(args, boolToInt(*f.Match))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanRun(rows *sql.Rows) (*domain.Run, error) {
	var run domain.Run
	var startedAt string

	err := rows.Scan(
		&run.ID, &startedAt, &run.InputFile, &run.TotalInput, &run.Invalid,
		&run.ValidRecords, &run.FilteredByRegion, &run.FilteredByAmount,
		&run.FinalCount, &run.TotalRevenue, &run.EnrichAttempted,
		&run.EnrichMatched, &run.EnrichSuccessRate,
	)
	if err != nil {
		return nil, err
	}

	run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	return &run, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

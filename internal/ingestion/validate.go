package ingestion

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/salesworks/salespipe/internal/domain"
)

// FilterOptions are the optional query-style filters applied after
// validation. Nil means the filter is unset.
type FilterOptions struct {
	Region    *string
	MinAmount *float64
	MaxAmount *float64
}

// FilterSummary accounts for every stage of validation and filtering.
// Invalid counts records rejected by a validation rule; lines dropped by
// the parser are not included.
type FilterSummary struct {
	TotalInput       int `json:"total_input"`
	Invalid          int `json:"invalid"`
	ValidRecords     int `json:"valid_records"`
	FilteredByRegion int `json:"filtered_by_region"`
	FilteredByAmount int `json:"filtered_by_amount"`
	FinalCount       int `json:"final_count"`
}

// Validator enforces the business validity rules and applies filters.
type Validator struct {
	log zerolog.Logger
}

func NewValidator(logger zerolog.Logger) *Validator {
	return &Validator{log: logger}
}

// ValidateAndFilter validates every record and then applies the filters in
// fixed order: region, min amount, max amount. The first failing rule marks
// a record invalid; no per-record reason is retained beyond the count.
func (v *Validator) ValidateAndFilter(records []domain.RawRecord, opts FilterOptions) ([]domain.Transaction, int, FilterSummary) {
	v.log.Info().Strs("regions", availableRegions(records)).Msg("available regions")

	invalid := 0
	valid := make([]domain.Transaction, 0, len(records))

	for i := range records {
		txn, ok := validateRecord(&records[i])
		if !ok {
			invalid++
			continue
		}
		valid = append(valid, txn)
	}

	logAmountRange(v.log, valid)
	v.log.Info().Int("valid", len(valid)).Int("invalid", invalid).Msg("validation complete")

	summary := FilterSummary{
		TotalInput:   len(records),
		Invalid:      invalid,
		ValidRecords: len(valid),
	}

	current := valid

	if opts.Region != nil {
		want := strings.ToLower(strings.TrimSpace(*opts.Region))
		before := len(current)
		current = keep(current, func(t *domain.Transaction) bool {
			return strings.ToLower(strings.TrimSpace(t.Region)) == want
		})
		summary.FilteredByRegion = before - len(current)
		v.log.Info().Str("region", *opts.Region).Int("remaining", len(current)).Msg("region filter applied")
	}

	if opts.MinAmount != nil {
		before := len(current)
		current = keep(current, func(t *domain.Transaction) bool {
			return t.Amount() >= *opts.MinAmount
		})
		summary.FilteredByAmount += before - len(current)
		v.log.Info().Float64("min_amount", *opts.MinAmount).Int("remaining", len(current)).Msg("min amount filter applied")
	}

	if opts.MaxAmount != nil {
		before := len(current)
		current = keep(current, func(t *domain.Transaction) bool {
			return t.Amount() <= *opts.MaxAmount
		})
		summary.FilteredByAmount += before - len(current)
		v.log.Info().Float64("max_amount", *opts.MaxAmount).Int("remaining", len(current)).Msg("max amount filter applied")
	}

	summary.FinalCount = len(current)
	return current, invalid, summary
}

// validateRecord applies the four rules in order and, on success, coerces
// the numeric fields into a typed transaction.
func validateRecord(r *domain.RawRecord) (domain.Transaction, bool) {
	for _, f := range r.Fields() {
		if f == "" {
			return domain.Transaction{}, false
		}
	}

	if !strings.HasPrefix(r.TransactionID, "T") ||
		!strings.HasPrefix(r.ProductID, "P") ||
		!strings.HasPrefix(r.CustomerID, "C") {
		return domain.Transaction{}, false
	}

	qty, err := strconv.Atoi(r.Quantity)
	if err != nil {
		return domain.Transaction{}, false
	}
	price, err := strconv.ParseFloat(r.UnitPrice, 64)
	if err != nil {
		return domain.Transaction{}, false
	}

	if qty <= 0 || price <= 0 {
		return domain.Transaction{}, false
	}

	return domain.Transaction{
		TransactionID: r.TransactionID,
		Date:          r.Date,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    r.CustomerID,
		Region:        r.Region,
	}, true
}

func keep(txns []domain.Transaction, pred func(*domain.Transaction) bool) []domain.Transaction {
	out := txns[:0:0]
	for i := range txns {
		if pred(&txns[i]) {
			out = append(out, txns[i])
		}
	}
	return out
}

func availableRegions(records []domain.RawRecord) []string {
	seen := make(map[string]bool)
	for i := range records {
		region := strings.TrimSpace(records[i].Region)
		if region != "" {
			seen[region] = true
		}
	}
	regions := make([]string, 0, len(seen))
	for r := range seen {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

func logAmountRange(log zerolog.Logger, txns []domain.Transaction) {
	if len(txns) == 0 {
		log.Info().Msg("no valid transactions to compute amount range")
		return
	}
	min, max := txns[0].Amount(), txns[0].Amount()
	for i := range txns[1:] {
		a := txns[i+1].Amount()
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	log.Info().Float64("min", min).Float64("max", max).Msg("transaction amount range (valid only)")
}

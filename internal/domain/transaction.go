package domain

// RawRecord is one sales line after field splitting and cleaning, before
// validation. Quantity and UnitPrice stay as cleaned strings so the
// validator owns the numeric coercion.
type RawRecord struct {
	TransactionID string
	Date          string
	ProductID     string
	ProductName   string
	Quantity      string
	UnitPrice     string
	CustomerID    string
	Region        string
}

// Fields returns the eight fields in file column order.
func (r *RawRecord) Fields() [8]string {
	return [8]string{
		r.TransactionID, r.Date, r.ProductID, r.ProductName,
		r.Quantity, r.UnitPrice, r.CustomerID, r.Region,
	}
}

// Transaction is one validated sales record. Dates are YYYY-MM-DD strings
// and are only ever compared lexicographically.
type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	Date          string  `json:"date"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	CustomerID    string  `json:"customer_id"`
	Region        string  `json:"region"`
}

// Amount is Quantity x UnitPrice. It is always recomputed, never stored.
func (t *Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction plus catalog metadata. Pointer fields
// are nil when the catalog had no match (or no value for that attribute).
type EnrichedTransaction struct {
	Transaction
	APICategory *string  `json:"api_category"`
	APIBrand    *string  `json:"api_brand"`
	APIRating   *float64 `json:"api_rating"`
	APIMatch    bool     `json:"api_match"`
}

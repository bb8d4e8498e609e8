package domain

// CatalogProduct is one entry as returned by the external product catalog.
// Pointer fields model attributes the catalog may omit.
type CatalogProduct struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Category *string  `json:"category"`
	Brand    *string  `json:"brand"`
	Rating   *float64 `json:"rating"`
}

// ProductInfo is the catalog attributes attached to a matched transaction.
type ProductInfo struct {
	Title    string
	Category *string
	Brand    *string
	Rating   *float64
}

// Package catalog provides the product catalog API client and the
// transaction enrichment step built on top of it.
package catalog

// Product is one catalog entry returned by the products endpoint.
type Product struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// ProductsResponse is the bulk products payload.
type ProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// ErrorResponse is the error payload returned on non-2xx responses.
type ErrorResponse struct {
	Message string `json:"message"`
}

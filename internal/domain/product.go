package domain

// Product is read-only catalog data returned by the backend. The client
// never mutates it.
type Product struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Price           int64         `json:"price"`
	Images          []string      `json:"images,omitempty"`
	Stock           *ProductStock `json:"stock,omitempty"`
	SimilarityScore *float64      `json:"similarity_score,omitempty"`
}

type ProductStock struct {
	Status      string `json:"status"`
	Quantity    int    `json:"quantity"`
	IsAvailable bool   `json:"is_available"`
}

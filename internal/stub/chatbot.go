package stub

import (
	"fmt"
	"strings"

	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
)

// SeedCatalog produces a deterministic fake catalog for the stub.
func SeedCatalog(n int) []domain.Product {
	faker := gofakeit.New(42)
	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, domain.Product{
			ID:          faker.UUID(),
			Name:        faker.ProductName(),
			Description: faker.ProductDescription(),
			Price:       int64(faker.Number(5, 200)) * 100,
			Stock: &domain.ProductStock{
				Status:      "in_stock",
				Quantity:    faker.Number(1, 50),
				IsAvailable: true,
			},
		})
	}
	return products
}

// searchCatalog does naive keyword matching over name and description,
// standing in for the hosted service's semantic search.
func searchCatalog(catalog []domain.Product, query string) []domain.Product {
	var hits []domain.Product
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) < 3 {
			continue
		}
		for _, p := range catalog {
			if strings.Contains(strings.ToLower(p.Name), word) ||
				strings.Contains(strings.ToLower(p.Description), word) {
				hits = appendUnique(hits, p)
			}
		}
	}
	return hits
}

func appendUnique(products []domain.Product, p domain.Product) []domain.Product {
	for _, existing := range products {
		if existing.ID == p.ID {
			return products
		}
	}
	return append(products, p)
}

func chatReply(products []domain.Product) string {
	if len(products) == 0 {
		return "Je n'ai pas trouvé de produit correspondant. Pouvez-vous préciser votre recherche ?"
	}
	var b strings.Builder
	b.WriteString("Voici ce que j'ai trouvé :\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s CFA)\n", p.Name, domain.FormatAmount(p.Price))
	}
	return b.String()
}

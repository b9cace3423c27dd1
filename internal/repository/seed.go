package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"sportify-api/internal/model"
)

//go:embed seed/products.json
var seedProductsJSON []byte

// SeedProducts returns the bundled storefront catalog.
func SeedProducts() ([]*model.Product, error) {
	var products []*model.Product
	if err := json.Unmarshal(seedProductsJSON, &products); err != nil {
		return nil, fmt.Errorf("decode seed products: %w", err)
	}

	for _, p := range products {
		if p.ID == "" || !p.Type.Valid() {
			return nil, fmt.Errorf("invalid seed product %q (type %q)", p.ID, p.Type)
		}
	}

	return products, nil
}

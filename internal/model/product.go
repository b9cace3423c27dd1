package model

import "slices"

type ProductType string

const (
	ProductTypeShoes     ProductType = "shoes"
	ProductTypeClothing  ProductType = "clothing"
	ProductTypeEquipment ProductType = "equipment"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeShoes, ProductTypeClothing, ProductTypeEquipment:
		return true
	}
	return false
}

type ColorVariant struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// SizeAvailable reports whether size can be ordered. Products without a size
// range accept an empty size only.
func (p *Product) SizeAvailable(size string) bool {
	if len(p.Sizes) == 0 {
		return size == ""
	}
	return slices.Contains(p.AvailableSizes, size)
}

package models

import (
	"strings"

	id "launchpad/pkg/domain"
	dErrors "launchpad/pkg/domain-errors"
)

// Product is a sellable item or service offered at a branch. Price is kept as
// the display string the actor typed.
type Product struct {
	ID          id.ProductID `json:"id"`
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
}

func NewProduct() Product {
	return Product{ID: id.NewProductID()}
}

type ProductField string

const (
	ProductFieldName        ProductField = "name"
	ProductFieldPrice       ProductField = "price"
	ProductFieldCategory    ProductField = "category"
	ProductFieldDescription ProductField = "description"
	ProductFieldImage       ProductField = "image"
)

// With returns a copy of p with one field replaced.
func (p Product) With(field ProductField, value string) (Product, error) {
	switch ProductField(strings.ToLower(string(field))) {
	case ProductFieldName:
		p.Name = value
	case ProductFieldPrice:
		p.Price = value
	case ProductFieldCategory:
		p.Category = value
	case ProductFieldDescription:
		p.Description = value
	case ProductFieldImage:
		p.Image = value
	default:
		return p, dErrors.New(dErrors.CodeInvalidInput, "unknown product field")
	}
	return p, nil
}

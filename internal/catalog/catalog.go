package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/s0ld1err/MagazinOnline/internal/models"
)

var ErrProductNotFound = errors.New("product not found in catalog")

// Product is what the rest of the system is allowed to know about a catalog
// entry: current name and unit price.
type Product struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Lookup resolves a product id to its current catalog entry.
type Lookup interface {
	Lookup(ctx context.Context, productID uint) (Product, error)
}

type gormLookup struct {
	db *gorm.DB
}

// NewGormLookup resolves products straight from the given gorm handle. Pass a
// transaction handle to get reads consistent with that transaction.
func NewGormLookup(db *gorm.DB) Lookup {
	return gormLookup{db: db}
}

func (g gormLookup) Lookup(ctx context.Context, productID uint) (Product, error) {
	var product models.Product
	err := g.db.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, err
	}

	return Product{ID: product.ID, Name: product.Name, Price: product.Price}, nil
}

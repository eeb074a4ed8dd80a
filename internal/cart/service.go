package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/s0ld1err/MagazinOnline/internal/catalog"
	"github.com/s0ld1err/MagazinOnline/internal/models"
)

// Service owns all mutations of a customer's cart and the checkout that turns
// a cart into an order. Every mutation runs in a transaction that locks the
// cart row, so concurrent requests against the same cart serialize.
type Service struct {
	db      *gorm.DB
	catalog catalog.Lookup
	log     *zap.SugaredLogger
}

func NewService(db *gorm.DB, lookup catalog.Lookup, log *zap.SugaredLogger) *Service {
	return &Service{db: db, catalog: lookup, log: log}
}

// View is the cart as returned to callers: lines carry the current catalog
// name and the line total at current prices. Neither is stored.
type View struct {
	ID         uint       `json:"id"`
	CustomerID uint       `json:"customer_id"`
	Items      []ItemView `json:"cart_items"`
}

type ItemView struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"` // unit price x quantity
}

func (s *Service) GetCart(ctx context.Context, customerID uint) (*View, error) {
	var c models.Cart
	err := s.db.WithContext(ctx).Preload("Items").Where("customer_id = ?", customerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart not found for customer %d", ErrNotFound, customerID)
	}
	if err != nil {
		return nil, err
	}

	view := &View{ID: c.ID, CustomerID: customerID, Items: []ItemView{}}
	for _, item := range c.Items {
		line := ItemView{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity}
		product, err := s.catalog.Lookup(ctx, item.ProductID)
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			// product vanished after it was added; keep the line so the
			// customer can still remove it
		case err != nil:
			return nil, err
		default:
			line.ProductName = product.Name
			line.Price = product.Price * float64(item.Quantity)
		}
		view.Items = append(view.Items, line)
	}

	return view, nil
}

// AddItem puts quantity units of a product into the customer's cart, creating
// the cart on first use. Re-adding a product merges into the existing line.
func (s *Service) AddItem(ctx context.Context, customerID, productID uint, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := catalog.NewGormLookup(tx).Lookup(ctx, productID); err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return fmt.Errorf("%w: product not found with ID: %d", ErrNotFound, productID)
			}
			return err
		}

		var c models.Cart
		if err := lockCart(tx).Where("customer_id = ?", customerID).
			FirstOrCreate(&c, models.Cart{CustomerID: customerID}).Error; err != nil {
			return err
		}

		var item models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", c.ID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{CartID: c.ID, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		item.Quantity += quantity
		return tx.Save(&item).Error
	})

	return classify(err)
}

// UpdateQuantity applies a signed delta to an existing line. A result below 1
// removes the line instead of storing a zero or negative quantity.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, productID uint, delta int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockedCart(tx, customerID)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", c.ID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item not found in cart", ErrNotFound)
		}
		if err != nil {
			return err
		}

		item.Quantity += delta
		if item.Quantity < 1 {
			return tx.Delete(&item).Error
		}
		return tx.Save(&item).Error
	})

	return classify(err)
}

func (s *Service) RemoveItem(ctx context.Context, customerID, cartItemID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockedCart(tx, customerID)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("id = ? AND cart_id = ?", cartItemID, c.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item not found in cart", ErrNotFound)
		}
		if err != nil {
			return err
		}

		return tx.Delete(&item).Error
	})

	return classify(err)
}

// lockCart adds FOR UPDATE on dialects that support it. sqlite (used in
// tests) serializes writers with a database-level lock instead.
func lockCart(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func lockedCart(tx *gorm.DB, customerID uint) (*models.Cart, error) {
	var c models.Cart
	err := lockCart(tx).Where("customer_id = ?", customerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart not found for customer %d", ErrNotFound, customerID)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

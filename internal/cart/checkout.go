package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/s0ld1err/MagazinOnline/internal/catalog"
	"github.com/s0ld1err/MagazinOnline/internal/models"
)

// Checkout converts the customer's cart into an immutable order and empties
// the cart, all in one transaction holding the cart row lock. Either the
// order exists and the cart is empty, or nothing changed.
//
// Prices and names are resolved against the catalog inside the transaction,
// never from the cache, so the snapshot reflects a consistent catalog read.
func (s *Service) Checkout(ctx context.Context, customerID uint, paymentMethod string) (*models.Order, error) {
	method, err := models.ParsePaymentMethod(paymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var order models.Order

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Cart
		err := lockCart(tx).Preload("Items").Where("customer_id = ?", customerID).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart not found for customer %d", ErrNotFound, customerID)
		}
		if err != nil {
			return err
		}

		if len(c.Items) == 0 {
			return fmt.Errorf("%w: cart is empty, nothing to checkout", ErrInvalidState)
		}

		var customer models.Customer
		err = tx.First(&customer, customerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: customer not found", ErrNotFound)
		}
		if err != nil {
			return err
		}

		resolver := catalog.NewGormLookup(tx)

		var total float64
		items := make([]models.OrderItem, 0, len(c.Items))
		for _, line := range c.Items {
			product, err := resolver.Lookup(ctx, line.ProductID)
			if errors.Is(err, catalog.ErrProductNotFound) {
				return fmt.Errorf("%w: product %d is no longer available", ErrInvalidState, line.ProductID)
			}
			if err != nil {
				return err
			}

			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
			})
			total += float64(line.Quantity) * product.Price
		}

		order = models.Order{
			Reference:       uuid.NewString(),
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			DeliveryAddress: customer.Address,
			Phone:           customer.Phone,
			Email:           customer.Email,
			PaymentMethod:   method,
			OrderDate:       time.Now().UTC(),
			TotalPrice:      total,
			Items:           items,
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", c.ID).Delete(&models.CartItem{}).Error
	})

	if err != nil {
		return nil, classify(err)
	}

	s.log.Infow("checkout completed",
		"order_id", order.ID,
		"reference", order.Reference,
		"customer_id", customerID,
		"total", order.TotalPrice,
		"items", len(order.Items),
	)

	return &order, nil
}

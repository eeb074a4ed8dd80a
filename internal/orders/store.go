package orders

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/s0ld1err/MagazinOnline/internal/models"
)

var ErrNotFound = errors.New("order not found")

// Store reads completed orders. Orders are written exactly once, by checkout,
// and never mutated afterwards; nothing here modifies data.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	var list []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) GetByID(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListAll returns every order; registered behind the admin route group.
func (s *Store) ListAll(ctx context.Context) ([]models.Order, error) {
	var list []models.Order
	if err := s.db.WithContext(ctx).Preload("Items").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

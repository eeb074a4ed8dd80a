package models

import (
	"fmt"
	"time"
)

// PaymentMethod is a closed enumeration; anything else is rejected at the
// boundary via ParsePaymentMethod.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCash           PaymentMethod = "cash"
	PaymentCreditCard     PaymentMethod = "credit_card"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCashOnDelivery, PaymentCash, PaymentCreditCard:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method: %q", s)
}

// Order is an immutable snapshot taken at checkout. Customer contact fields
// are copied by value so later customer edits never rewrite order history.
type Order struct {
    ID              uint          `gorm:"primaryKey"`
    Reference       string        `gorm:"uniqueIndex;not null"`
    CustomerID      uint          `gorm:"index;not null"`
    CustomerName    string        `gorm:"not null"`
    DeliveryAddress string
    Phone           string
    Email           string
    PaymentMethod   PaymentMethod `gorm:"not null"`
    OrderDate       time.Time     `gorm:"not null"`
    TotalPrice      float64       `gorm:"not null"`
    Items           []OrderItem   `gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
    ID          uint    `gorm:"primaryKey"`
    OrderID     uint    `gorm:"index;not null"`
    ProductID   uint    `gorm:"index;not null"`
    ProductName string  `gorm:"not null"`
    Quantity    int     `gorm:"not null"`
    UnitPrice   float64 `gorm:"not null"`
}

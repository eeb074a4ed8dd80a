package models

type Cart struct {
    ID         uint       `gorm:"primaryKey"`
    CustomerID uint       `gorm:"uniqueIndex;not null"` // one cart per customer
    Items      []CartItem `gorm:"foreignKey:CartID"`
}

type CartItem struct {
    ID        uint `gorm:"primaryKey"`
    CartID    uint `gorm:"uniqueIndex:idx_cart_product;not null"`
    ProductID uint `gorm:"uniqueIndex:idx_cart_product;not null"`
    Quantity  int  `gorm:"not null"` // always >= 1; dropping below 1 deletes the row
}

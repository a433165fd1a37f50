package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name          string     `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	PurchasePrice float64    `gorm:"not null;default:0" json:"purchase_price" validate:"gte=0"`
	SellingPrice  float64    `gorm:"not null;default:0" json:"selling_price" validate:"gte=0"`
	Quantity      int        `gorm:"not null;default:0" json:"quantity"`
	SerialNumber  *string    `gorm:"type:varchar(100);uniqueIndex" json:"serial_number,omitempty"`
	Barcode       string     `gorm:"type:varchar(100)" json:"barcode"`
	CategoryID    *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// ProfitMargin is the unit profit at current prices.
func (p *Product) ProfitMargin() float64 {
	return p.SellingPrice - p.PurchasePrice
}

// IsLowStock reports whether the quantity is below the given threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.Quantity < threshold
}

package model

import "github.com/google/uuid"

type InvoiceStatus string

const (
	InvoiceCompleted InvoiceStatus = "completed"
	InvoiceReturned  InvoiceStatus = "returned"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

type Invoice struct {
	BaseModel
	InvoiceNumber  string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	CustomerID     *uuid.UUID    `gorm:"type:uuid;index" json:"customer_id"`
	Customer       *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TotalAmount    float64       `gorm:"not null;default:0" json:"total_amount"`
	TotalCost      float64       `gorm:"not null;default:0" json:"total_cost"`
	Profit         float64       `gorm:"not null;default:0" json:"profit"`
	TaxAmount      float64       `gorm:"not null;default:0" json:"tax_amount"`
	DiscountAmount float64       `gorm:"not null;default:0" json:"discount_amount"`
	Status         InvoiceStatus `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	PaymentMethod  string        `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`

	Items []InvoiceItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// CalculateTotals re-derives invoice totals from the line items.
// profit = revenue - cost - tax - discount
func (inv *Invoice) CalculateTotals() {
	inv.TotalAmount = 0
	inv.TotalCost = 0
	for _, item := range inv.Items {
		inv.TotalAmount += item.TotalPrice
		inv.TotalCost += item.TotalCost
	}
	inv.Profit = inv.TotalAmount - inv.TotalCost - inv.TaxAmount - inv.DiscountAmount
}

type InvoiceItem struct {
	BaseModel
	InvoiceID      uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product        *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	UnitPrice      float64   `gorm:"not null" json:"unit_price"`
	UnitCost       float64   `gorm:"not null" json:"unit_cost"`
	TotalPrice     float64   `gorm:"not null" json:"total_price"`
	TotalCost      float64   `gorm:"not null" json:"total_cost"`
	DiscountAmount float64   `gorm:"not null;default:0" json:"discount_amount"`
}

// CalculateTotals computes the line totals from quantity and unit figures.
func (it *InvoiceItem) CalculateTotals() {
	it.TotalPrice = it.UnitPrice*float64(it.Quantity) - it.DiscountAmount
	it.TotalCost = it.UnitCost * float64(it.Quantity)
}

// LineProfit is the profit contributed by this line.
func (it *InvoiceItem) LineProfit() float64 {
	return it.TotalPrice - it.TotalCost
}

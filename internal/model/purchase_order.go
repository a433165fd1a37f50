package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type PurchaseOrder struct {
	BaseModel
	OrderNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier    *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	TotalAmount     float64 `gorm:"not null;default:0" json:"total_amount"`
	PaidAmount      float64 `gorm:"default:0" json:"paid_amount"`
	RemainingAmount float64 `gorm:"default:0" json:"remaining_amount"`

	Status        string        `gorm:"type:varchar(20);default:'pending'" json:"status"` // pending, completed, cancelled
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'unpaid'" json:"payment_status"`

	OrderDate    time.Time  `json:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes"`

	Items []PurchaseOrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// CalculateTotals re-derives order totals from the items and refreshes the
// payment status from paid vs total amount.
func (po *PurchaseOrder) CalculateTotals() {
	po.TotalAmount = 0
	for _, item := range po.Items {
		po.TotalAmount += item.TotalAmount
	}
	po.RemainingAmount = po.TotalAmount - po.PaidAmount

	switch {
	case po.PaidAmount == 0:
		po.PaymentStatus = PaymentUnpaid
	case po.PaidAmount >= po.TotalAmount:
		po.PaymentStatus = PaymentPaid
	default:
		po.PaymentStatus = PaymentPartial
	}
}

type PurchaseOrderItem struct {
	BaseModel
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product         *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity        int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitCost        float64   `gorm:"not null" json:"unit_cost" validate:"gte=0"`
	TotalAmount     float64   `gorm:"not null" json:"total_amount"`
}

// CalculateTotal computes the line total.
func (it *PurchaseOrderItem) CalculateTotal() {
	it.TotalAmount = float64(it.Quantity) * it.UnitCost
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type SupplierPayment struct {
	BaseModel
	SupplierID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier        *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	PurchaseOrderID *uuid.UUID `gorm:"type:uuid" json:"purchase_order_id,omitempty"`

	Amount        float64   `gorm:"not null" json:"amount" validate:"required,gt=0"`
	PaymentMethod string    `gorm:"type:varchar(20);default:'cash'" json:"payment_method"` // cash, bank_transfer, check
	PaymentDate   time.Time `json:"payment_date"`

	ReferenceNumber string `gorm:"type:varchar(100)" json:"reference_number"`
	Notes           string `gorm:"type:text" json:"notes"`
}

type SupplierTransactionType string

const (
	SupplierPurchase SupplierTransactionType = "purchase"
	SupplierPayout   SupplierTransactionType = "payment"
)

// SupplierTransaction is the authoritative supplier ledger. Purchase orders
// and payments append entries here inside their own transactions; manual
// entries can be added through the supplier-transactions endpoint.
type SupplierTransaction struct {
	BaseModel
	SupplierID      uuid.UUID               `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier        *Supplier               `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Type            SupplierTransactionType `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount          float64                 `gorm:"not null" json:"amount"`
	Description     string                  `gorm:"type:text" json:"description"`
	ReferenceNumber string                  `gorm:"type:varchar(100)" json:"reference_number"`
	CreatedBy       string                  `gorm:"type:varchar(100);default:'admin'" json:"created_by"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	BaseModel
	Name    string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Phone   *string `gorm:"type:varchar(20);uniqueIndex" json:"phone,omitempty"`
	Email   *string `gorm:"type:varchar(100);uniqueIndex" json:"email,omitempty"`
	Address string  `gorm:"type:text" json:"address"`

	LoyaltyPoints  int     `gorm:"default:0" json:"loyalty_points"`
	TotalPurchases float64 `gorm:"default:0" json:"total_purchases"`
	VisitCount     int     `gorm:"default:0" json:"visit_count"`

	LastVisit *time.Time `json:"last_visit,omitempty"`

	Invoices []Invoice `json:"invoices,omitempty"`
}

type LoyaltyType string

const (
	LoyaltyEarned   LoyaltyType = "earned"
	LoyaltyRedeemed LoyaltyType = "redeemed"
)

// LoyaltyTransaction is the per-customer ledger of earned and redeemed points.
// Points are positive for earnings, negative for redemptions.
type LoyaltyTransaction struct {
	BaseModel
	CustomerID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id"`
	Points      int         `gorm:"not null" json:"points"`
	Type        LoyaltyType `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Description string      `gorm:"type:varchar(200)" json:"description"`
	InvoiceID   *uuid.UUID  `gorm:"type:uuid" json:"invoice_id,omitempty"`
}

package model

type Supplier struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	CompanyName string `gorm:"type:varchar(150)" json:"company_name"`
	Phone       string `gorm:"type:varchar(20)" json:"phone"`
	Email       string `gorm:"type:varchar(100)" json:"email"`
	Address     string `gorm:"type:text" json:"address"`

	// Cached ledger totals. balance = total_purchases - total_payments;
	// the reconciliation endpoint re-derives all three from the ledger.
	TotalPurchases float64 `gorm:"default:0" json:"total_purchases"`
	TotalPayments  float64 `gorm:"default:0" json:"total_payments"`
	Balance        float64 `gorm:"default:0" json:"balance"`

	Notes    string `gorm:"type:text" json:"notes"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	PurchaseOrders []PurchaseOrder   `json:"purchase_orders,omitempty"`
	Payments       []SupplierPayment `json:"payments,omitempty"`
}

// UpdateBalance refreshes the cached balance from the cached totals.
func (s *Supplier) UpdateBalance() {
	s.Balance = s.TotalPurchases - s.TotalPayments
}

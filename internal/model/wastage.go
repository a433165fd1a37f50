package model

import "github.com/google/uuid"

// Wastage is inventory written off as loss. CostPerUnit is a snapshot of the
// purchase price at recording time, not the current price.
type Wastage struct {
	BaseModel
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product     *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity    int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Reason      string    `gorm:"type:varchar(100);not null" json:"reason" validate:"required"`
	CostPerUnit float64   `gorm:"not null" json:"cost_per_unit"`
	TotalCost   float64   `gorm:"not null" json:"total_cost"`
	Notes       string    `gorm:"type:text" json:"notes"`
	RecordedBy  string    `gorm:"type:varchar(100);not null" json:"recorded_by" validate:"required"`
}

type WastageReason struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// DefaultWastageReasons are seeded on first start.
var DefaultWastageReasons = []WastageReason{
	{Name: "expired", Description: "Products past their expiry date"},
	{Name: "transport damage", Description: "Damaged during transport"},
	{Name: "broken", Description: "Broken or physically damaged"},
	{Name: "manufacturing defect", Description: "Defect from the factory"},
	{Name: "poor storage", Description: "Spoiled due to bad storage"},
	{Name: "other", Description: "Other reasons"},
}

package model

type Category struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string  `gorm:"type:text" json:"description"`
	TotalSales  float64 `gorm:"default:0" json:"total_sales"` // running net sales counter
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	Products []Product `json:"products,omitempty"`
}

// DefaultCategories seeds an empty store with a starter catalog structure.
var DefaultCategories = []Category{
	{Name: "Personal Care", Description: "Shampoo, soap, creams, toothpaste", IsActive: true},
	{Name: "Beverages", Description: "Tea, coffee, juices, water", IsActive: true},
	{Name: "Groceries", Description: "Rice, sugar, oil, spices", IsActive: true},
	{Name: "Cleaning Supplies", Description: "Detergents, disinfectants, cleaning tools", IsActive: true},
	{Name: "Housewares", Description: "Plates, cups, kitchen tools", IsActive: true},
}

package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Admin is a back-office account. The role is flat: "admin" for the primary
// account, "cashier" for everyone else.
type Admin struct {
	BaseModel
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	FullName string `gorm:"type:varchar(200)" json:"full_name"`
	Role     string `gorm:"type:varchar(20);default:'cashier'" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the admin's password
func (a *Admin) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashed)
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (a *Admin) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) == nil
}

// AdminResponse is used for API responses (without the password hash)
type AdminResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

func (a *Admin) ToResponse() AdminResponse {
	return AdminResponse{
		ID:       a.ID,
		Username: a.Username,
		FullName: a.FullName,
		Role:     a.Role,
		IsActive: a.IsActive,
	}
}

package model

import (
	"time"
)

type ReminderType string

const (
	ReminderSalary          ReminderType = "salary"
	ReminderSupplierPayment ReminderType = "supplier_payment"
	ReminderCustom          ReminderType = "custom"
)

type Reminder struct {
	BaseModel
	Type        ReminderType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=salary supplier_payment custom"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title" validate:"required"`
	Description string       `gorm:"type:text" json:"description"`
	Amount      *float64     `json:"amount,omitempty"`
	DueDate     time.Time    `gorm:"not null;index" json:"due_date" validate:"required"`

	IsCompleted        bool       `gorm:"default:false" json:"is_completed"`
	IsRecurring        bool       `gorm:"default:false" json:"is_recurring"`
	RecurrenceInterval *int       `json:"recurrence_interval,omitempty"` // days between recurrences
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	EmployeeName string `gorm:"type:varchar(100)" json:"employee_name,omitempty"`
	SupplierName string `gorm:"type:varchar(100)" json:"supplier_name,omitempty"`
}

// IsOverdue reports whether the due date has passed for an open reminder.
func (r *Reminder) IsOverdue() bool {
	if r.IsCompleted {
		return false
	}
	return time.Now().After(r.DueDate)
}

// NextRecurrence builds the follow-up reminder for a recurring one.
// Returns nil if the reminder does not recur.
func (r *Reminder) NextRecurrence() *Reminder {
	if !r.IsRecurring || r.RecurrenceInterval == nil {
		return nil
	}
	return &Reminder{
		Type:               r.Type,
		Title:              r.Title,
		Description:        r.Description,
		Amount:             r.Amount,
		DueDate:            r.DueDate.AddDate(0, 0, *r.RecurrenceInterval),
		IsRecurring:        true,
		RecurrenceInterval: r.RecurrenceInterval,
		EmployeeName:       r.EmployeeName,
		SupplierName:       r.SupplierName,
	}
}

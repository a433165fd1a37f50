package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/pkg/validator"

	"github.com/google/uuid"
)

type ReminderService interface {
	Create(reminder *model.Reminder) error
	CreateSalary(employeeName string, amount float64, dueDate time.Time, recurring bool) (*model.Reminder, error)
	CreateSupplierPayment(supplierName string, amount float64, dueDate time.Time) (*model.Reminder, error)
	Update(id uuid.UUID, req *model.Reminder) (*model.Reminder, error)
	Delete(id uuid.UUID) error
	Get(id uuid.UUID) (*model.Reminder, error)
	List(filter repository.ReminderFilter) ([]model.Reminder, error)
	Complete(id uuid.UUID) (*model.Reminder, error)
}

type reminderService struct {
	reminderRepo repository.ReminderRepository
}

func NewReminderService(reminderRepo repository.ReminderRepository) ReminderService {
	return &reminderService{reminderRepo: reminderRepo}
}

func (s *reminderService) Create(reminder *model.Reminder) error {
	if errs := validator.ValidateStruct(reminder); len(errs) > 0 {
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	if reminder.IsRecurring && (reminder.RecurrenceInterval == nil || *reminder.RecurrenceInterval <= 0) {
		return errors.New("recurring reminders need a positive recurrence interval")
	}
	return s.reminderRepo.Create(reminder)
}

// CreateSalary builds a salary reminder, monthly when recurring.
func (s *reminderService) CreateSalary(employeeName string, amount float64, dueDate time.Time, recurring bool) (*model.Reminder, error) {
	if employeeName == "" {
		return nil, errors.New("employee name is required")
	}
	reminder := &model.Reminder{
		Type:         model.ReminderSalary,
		Title:        "Salary: " + employeeName,
		Amount:       &amount,
		DueDate:      dueDate,
		IsRecurring:  recurring,
		EmployeeName: employeeName,
	}
	if recurring {
		interval := 30
		reminder.RecurrenceInterval = &interval
	}
	if err := s.reminderRepo.Create(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) CreateSupplierPayment(supplierName string, amount float64, dueDate time.Time) (*model.Reminder, error) {
	if supplierName == "" {
		return nil, errors.New("supplier name is required")
	}
	reminder := &model.Reminder{
		Type:         model.ReminderSupplierPayment,
		Title:        "Supplier payment: " + supplierName,
		Amount:       &amount,
		DueDate:      dueDate,
		SupplierName: supplierName,
	}
	if err := s.reminderRepo.Create(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) Update(id uuid.UUID, req *model.Reminder) (*model.Reminder, error) {
	existing, err := s.reminderRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("reminder not found")
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Amount = req.Amount
	existing.DueDate = req.DueDate
	existing.IsRecurring = req.IsRecurring
	existing.RecurrenceInterval = req.RecurrenceInterval
	existing.EmployeeName = req.EmployeeName
	existing.SupplierName = req.SupplierName

	if err := s.reminderRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *reminderService) Delete(id uuid.UUID) error {
	reminder, err := s.reminderRepo.FindByID(id)
	if err != nil {
		return errors.New("reminder not found")
	}
	return s.reminderRepo.Delete(reminder)
}

func (s *reminderService) Get(id uuid.UUID) (*model.Reminder, error) {
	return s.reminderRepo.FindByID(id)
}

func (s *reminderService) List(filter repository.ReminderFilter) ([]model.Reminder, error) {
	return s.reminderRepo.FindAll(filter)
}

// Complete closes a reminder. Recurring reminders immediately get their
// follow-up scheduled one interval later.
func (s *reminderService) Complete(id uuid.UUID) (*model.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("reminder not found")
	}
	if reminder.IsCompleted {
		return reminder, nil
	}

	now := time.Now()
	reminder.IsCompleted = true
	reminder.CompletedAt = &now
	if err := s.reminderRepo.Update(reminder); err != nil {
		return nil, err
	}

	if next := reminder.NextRecurrence(); next != nil {
		if err := s.reminderRepo.Create(next); err != nil {
			return nil, err
		}
	}
	return reminder, nil
}

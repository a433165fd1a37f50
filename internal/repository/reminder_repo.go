package repository

import (
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderFilter narrows reminder listings. Status is one of
// "upcoming", "overdue", "completed", "all" or "" (open reminders).
type ReminderFilter struct {
	Status    string
	Type      string
	DaysAhead int
}

type ReminderRepository interface {
	Create(reminder *model.Reminder) error
	FindByID(id uuid.UUID) (*model.Reminder, error)
	FindAll(filter ReminderFilter) ([]model.Reminder, error)
	Update(reminder *model.Reminder) error
	Delete(reminder *model.Reminder) error
}

type reminderRepo struct {
	db *gorm.DB
}

func NewReminderRepo(db *gorm.DB) ReminderRepository {
	return &reminderRepo{db}
}

func (r *reminderRepo) Create(reminder *model.Reminder) error {
	return r.db.Create(reminder).Error
}

func (r *reminderRepo) FindByID(id uuid.UUID) (*model.Reminder, error) {
	var reminder model.Reminder
	err := r.db.First(&reminder, "id = ?", id).Error
	return &reminder, err
}

func (r *reminderRepo) FindAll(filter ReminderFilter) ([]model.Reminder, error) {
	var reminders []model.Reminder

	query := r.db.Model(&model.Reminder{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	now := time.Now()
	switch filter.Status {
	case "upcoming":
		daysAhead := filter.DaysAhead
		if daysAhead <= 0 {
			daysAhead = 30
		}
		query = query.Where("due_date <= ? AND is_completed = ?", now.AddDate(0, 0, daysAhead), false)
	case "overdue":
		query = query.Where("due_date < ? AND is_completed = ?", now, false)
	case "completed":
		query = query.Where("is_completed = ?", true)
	case "all":
	default:
		query = query.Where("is_completed = ?", false)
	}

	err := query.Order("due_date ASC").Find(&reminders).Error
	return reminders, err
}

func (r *reminderRepo) Update(reminder *model.Reminder) error {
	return r.db.Save(reminder).Error
}

func (r *reminderRepo) Delete(reminder *model.Reminder) error {
	return r.db.Delete(reminder).Error
}

package service

import (
	"testing"
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteRecurringReminderSchedulesNext(t *testing.T) {
	env := newTestEnv(t)

	due := time.Now().AddDate(0, 0, 3)
	reminder, err := env.reminders.CreateSalary("Ahmed", 6000, due, true)
	require.NoError(t, err)
	require.True(t, reminder.IsRecurring)

	completed, err := env.reminders.Complete(reminder.ID)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)
	require.NotNil(t, completed.CompletedAt)

	// A follow-up is waiting one interval later.
	open, err := env.reminders.List(repository.ReminderFilter{})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, model.ReminderSalary, open[0].Type)
	assert.WithinDuration(t, due.AddDate(0, 0, 30), open[0].DueDate, time.Second)
}

func TestCompleteCustomReminderIsFinal(t *testing.T) {
	env := newTestEnv(t)

	reminder := &model.Reminder{
		Type:    model.ReminderCustom,
		Title:   "Renew shop license",
		DueDate: time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, env.reminders.Create(reminder))

	_, err := env.reminders.Complete(reminder.ID)
	require.NoError(t, err)

	open, err := env.reminders.List(repository.ReminderFilter{})
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestReminderOverdueFilter(t *testing.T) {
	env := newTestEnv(t)

	past := &model.Reminder{
		Type:    model.ReminderCustom,
		Title:   "Pay electricity",
		DueDate: time.Now().AddDate(0, 0, -2),
	}
	require.NoError(t, env.reminders.Create(past))
	_, err := env.reminders.CreateSupplierPayment("Delta Foods", 900, time.Now().AddDate(0, 0, 10))
	require.NoError(t, err)

	overdue, err := env.reminders.List(repository.ReminderFilter{Status: "overdue"})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, past.ID, overdue[0].ID)
	assert.True(t, overdue[0].IsOverdue())

	upcoming, err := env.reminders.List(repository.ReminderFilter{Status: "upcoming", DaysAhead: 30})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
}

func TestRecurringReminderNeedsInterval(t *testing.T) {
	env := newTestEnv(t)

	reminder := &model.Reminder{
		Type:        model.ReminderCustom,
		Title:       "Weekly stock check",
		DueDate:     time.Now().AddDate(0, 0, 7),
		IsRecurring: true,
	}
	err := env.reminders.Create(reminder)
	assert.Error(t, err)
}

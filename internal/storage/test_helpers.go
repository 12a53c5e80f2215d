package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// UniqueEmail возвращает почту, не конфликтующую с UNIQUE-ограничением users.email.
func UniqueEmail() string {
	return fmt.Sprintf("user-%s@example.com", uuid.NewString())
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, passwordHash string) int64 {
	t.Helper()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3) RETURNING id`,
		name, email, passwordHash).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateBudget создает тестовый бюджет и возвращает его ID
func (f *TestDataFactory) CreateBudget(t *testing.T, userID int64, name, category string,
	amount float64, period string, startDate, endDate time.Time, isRecurring bool, status string) int64 {
	t.Helper()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO budgets
		(user_id, name, category, amount, period, start_date, end_date, is_recurring, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		userID, name, category, amount, period, startDate, endDate, isRecurring, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateExpense создает тестовый расход и возвращает его ID
func (f *TestDataFactory) CreateExpense(t *testing.T, userID int64, amount float64,
	description, category string, date time.Time, budgetID *int64) int64 {
	t.Helper()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO expenses
		(user_id, amount, description, category, date, budget_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userID, amount, description, category, date, budgetID).Scan(&id)
	require.NoError(t, err)
	return id
}

// GetTestBudget возвращает стандартный тестовый бюджет
func GetTestBudget(userID int64) models.Budget {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.Budget{
		UserID:      userID,
		Name:        "Groceries",
		Category:    "food",
		Amount:      500,
		Period:      models.PeriodMonthly,
		StartDate:   start,
		EndDate:     start.AddDate(0, 1, 0).AddDate(0, 0, -1),
		IsRecurring: true,
		Status:      models.StatusActive,
	}
}

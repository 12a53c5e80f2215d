package budget

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateBudget(ctx context.Context, budget models.Budget) (int64, error) {
	args := m.Called(ctx, budget)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ReadBudget(ctx context.Context, id, userID int64) (*models.Budget, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Budget), args.Error(1)
}

func (m *MockRepository) UpdateBudget(ctx context.Context, budget models.Budget, id, userID int64) (int64, error) {
	args := m.Called(ctx, budget, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) RemoveBudget(ctx context.Context, id, userID int64) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListBudgets(ctx context.Context, userID int64, status string) ([]*models.Budget, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Budget), args.Error(1)
}

func (m *MockRepository) ListActiveBudgets(ctx context.Context, userID int64) ([]*models.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Budget), args.Error(1)
}

func (m *MockRepository) ListExpensesByBudget(ctx context.Context, budgetID, userID int64) ([]*models.Expense, error) {
	args := m.Called(ctx, budgetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockRepository) ListAssignedExpenses(ctx context.Context, userID int64) ([]*models.Expense, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptrInt64(v int64) *int64 { return &v }

func testBudget(id, userID int64, amount float64) models.Budget {
	return models.Budget{
		ID:        id,
		UserID:    userID,
		Name:      "Groceries",
		Category:  "food",
		Amount:    amount,
		Period:    models.PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:    models.StatusActive,
	}
}

func TestComputeView(t *testing.T) {
	budget := testBudget(1, 1, 500)
	expenses := []*models.Expense{
		{ID: 1, Amount: 120.50, BudgetID: ptrInt64(1)},
		{ID: 2, Amount: 79.50, BudgetID: ptrInt64(1)},
	}

	view := ComputeView(budget, expenses)

	assert.InDelta(t, 200.0, view.TotalSpent, 1e-9)
	assert.InDelta(t, 300.0, view.Remaining, 1e-9)
	assert.InDelta(t, 40.0, view.ProgressPercentage, 1e-9)
}

func TestComputeView_NoExpenses(t *testing.T) {
	view := ComputeView(testBudget(1, 1, 500), nil)

	assert.Zero(t, view.TotalSpent)
	assert.InDelta(t, 500.0, view.Remaining, 1e-9)
	assert.Zero(t, view.ProgressPercentage)
}

func TestComputeView_ZeroAmount(t *testing.T) {
	expenses := []*models.Expense{{ID: 1, Amount: 50, BudgetID: ptrInt64(1)}}

	view := ComputeView(testBudget(1, 1, 0), expenses)

	assert.Zero(t, view.ProgressPercentage)
	assert.InDelta(t, -50.0, view.Remaining, 1e-9)
}

func TestComputeView_Overspent(t *testing.T) {
	expenses := []*models.Expense{{ID: 1, Amount: 750, BudgetID: ptrInt64(1)}}

	view := ComputeView(testBudget(1, 1, 500), expenses)

	assert.InDelta(t, -250.0, view.Remaining, 1e-9)
	assert.InDelta(t, 150.0, view.ProgressPercentage, 1e-9)
}

func TestSummary_GroupsExpensesByBudget(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	food := testBudget(1, 7, 500)
	travel := testBudget(2, 7, 1000)
	travel.Category = "travel"

	repo.On("ListActiveBudgets", mock.Anything, int64(7)).
		Return([]*models.Budget{&food, &travel}, nil)
	repo.On("ListAssignedExpenses", mock.Anything, int64(7)).
		Return([]*models.Expense{
			{ID: 1, Amount: 100, BudgetID: ptrInt64(1)},
			{ID: 2, Amount: 400, BudgetID: ptrInt64(2)},
			{ID: 3, Amount: 150, BudgetID: ptrInt64(1)},
		}, nil)

	views, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.InDelta(t, 250.0, views[0].TotalSpent, 1e-9)
	assert.InDelta(t, 50.0, views[0].ProgressPercentage, 1e-9)
	assert.InDelta(t, 400.0, views[1].TotalSpent, 1e-9)
	assert.InDelta(t, 40.0, views[1].ProgressPercentage, 1e-9)
	repo.AssertExpectations(t)
}

func TestCategoryRollup_OrderedByTotalBudgeted(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	food1 := testBudget(1, 7, 300)
	food2 := testBudget(2, 7, 200)
	travel := testBudget(3, 7, 1000)
	travel.Category = "travel"

	repo.On("ListActiveBudgets", mock.Anything, int64(7)).
		Return([]*models.Budget{&food1, &food2, &travel}, nil)
	repo.On("ListAssignedExpenses", mock.Anything, int64(7)).
		Return([]*models.Expense{
			{ID: 1, Amount: 100, BudgetID: ptrInt64(1)},
			{ID: 2, Amount: 50, BudgetID: ptrInt64(2)},
			{ID: 3, Amount: 700, BudgetID: ptrInt64(3)},
		}, nil)

	rollups, err := svc.CategoryRollup(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rollups, 2)

	assert.Equal(t, "travel", rollups[0].Category)
	assert.Equal(t, 1, rollups[0].BudgetCount)
	assert.InDelta(t, 1000.0, rollups[0].TotalBudgeted, 1e-9)
	assert.InDelta(t, 700.0, rollups[0].TotalSpent, 1e-9)

	assert.Equal(t, "food", rollups[1].Category)
	assert.Equal(t, 2, rollups[1].BudgetCount)
	assert.InDelta(t, 500.0, rollups[1].TotalBudgeted, 1e-9)
	assert.InDelta(t, 150.0, rollups[1].TotalSpent, 1e-9)
}

func TestDetails_CacheMiss(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, discardLogger())

	budget := testBudget(1, 7, 500)
	expenses := []*models.Expense{{ID: 1, Amount: 100, BudgetID: ptrInt64(1)}}

	repo.On("ReadBudget", mock.Anything, int64(1), int64(7)).Return(&budget, nil)
	cache.On("Get", ViewCacheKey(1), mock.Anything).Return(false, nil)
	repo.On("ListExpensesByBudget", mock.Anything, int64(1), int64(7)).Return(expenses, nil)
	cache.On("Set", ViewCacheKey(1), mock.Anything, time.Hour).Return(nil)

	details, err := svc.Details(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, details.TotalSpent, 1e-9)
	assert.Len(t, details.Expenses, 1)
	cache.AssertExpectations(t)
}

func TestCreate_InvalidDateRange(t *testing.T) {
	svc := New(new(MockRepository), new(MockCache), discardLogger())

	_, err := svc.Create(context.Background(), 7, models.DummyBudget{
		Name:      "Groceries",
		Category:  "food",
		Amount:    500,
		StartDate: "2024-02-01",
		EndDate:   "2024-01-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreate_DefaultsPeriodAndStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	repo.On("CreateBudget", mock.Anything, mock.MatchedBy(func(b models.Budget) bool {
		return b.Period == models.PeriodMonthly && b.Status == models.StatusActive
	})).Return(int64(42), nil)

	id, err := svc.Create(context.Background(), 7, models.DummyBudget{
		Name:      "Groceries",
		Category:  "food",
		Amount:    500,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	repo.AssertExpectations(t)
}

func TestTogglePause(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, discardLogger())

	budget := testBudget(1, 7, 500)
	repo.On("ReadBudget", mock.Anything, int64(1), int64(7)).Return(&budget, nil)
	repo.On("UpdateBudget", mock.Anything, mock.MatchedBy(func(b models.Budget) bool {
		return b.Status == models.StatusPaused
	}), int64(1), int64(7)).Return(int64(1), nil)
	cache.On("Invalidate", ViewCacheKey(1)).Return(nil)

	updated, err := svc.TogglePause(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, updated.Status)
}

func TestTogglePause_CompletedBudget(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	budget := testBudget(1, 7, 500)
	budget.Status = models.StatusCompleted
	repo.On("ReadBudget", mock.Anything, int64(1), int64(7)).Return(&budget, nil)

	_, err := svc.TogglePause(context.Background(), 7, 1)
	assert.Error(t, err)
}

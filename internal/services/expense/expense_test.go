package expense

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
	"github.com/magabrotheeeer/budget-tracker/internal/services/budget"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateExpense(ctx context.Context, expense models.Expense) (int64, error) {
	args := m.Called(ctx, expense)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ReadExpense(ctx context.Context, id, userID int64) (*models.Expense, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockRepository) UpdateExpense(ctx context.Context, expense models.Expense, id, userID int64) (int64, error) {
	args := m.Called(ctx, expense, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) RemoveExpense(ctx context.Context, id, userID int64) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListExpenses(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockRepository) ReadBudget(ctx context.Context, id, userID int64) (*models.Budget, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Budget), args.Error(1)
}

func (m *MockRepository) MonthlyTotal(ctx context.Context, userID int64, year int, month time.Month) (float64, error) {
	args := m.Called(ctx, userID, year, month)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRepository) CategoryTotals(ctx context.Context, userID int64, from, to time.Time) ([]*models.CategoryTotal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CategoryTotal), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptrInt64(v int64) *int64 { return &v }

func TestCreate_UnassignedExpense(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	repo.On("CreateExpense", mock.Anything, mock.MatchedBy(func(e models.Expense) bool {
		return e.UserID == 7 && e.BudgetID == nil && e.Amount == 42.5
	})).Return(int64(11), nil)

	id, err := svc.Create(context.Background(), 7, models.DummyExpense{
		Amount:      42.5,
		Description: "lunch",
		Category:    "food",
		Date:        "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	repo.AssertExpectations(t)
}

func TestCreate_AssignedExpense_InvalidatesBudgetView(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, discardLogger())

	repo.On("ReadBudget", mock.Anything, int64(3), int64(7)).
		Return(&models.Budget{ID: 3, UserID: 7}, nil)
	repo.On("CreateExpense", mock.Anything, mock.Anything).Return(int64(11), nil)
	cache.On("Invalidate", budget.ViewCacheKey(3)).Return(nil)

	_, err := svc.Create(context.Background(), 7, models.DummyExpense{
		Amount:      42.5,
		Description: "lunch",
		Category:    "food",
		Date:        "2024-01-15",
		BudgetID:    ptrInt64(3),
	})
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestCreate_ForeignBudget(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	repo.On("ReadBudget", mock.Anything, int64(3), int64(7)).
		Return(nil, storage.ErrNotFound)

	_, err := svc.Create(context.Background(), 7, models.DummyExpense{
		Amount:      42.5,
		Description: "lunch",
		Category:    "food",
		Date:        "2024-01-15",
		BudgetID:    ptrInt64(3),
	})
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestUpdate_ReassignInvalidatesBothBudgets(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, discardLogger())

	repo.On("ReadExpense", mock.Anything, int64(11), int64(7)).
		Return(&models.Expense{ID: 11, UserID: 7, BudgetID: ptrInt64(3)}, nil)
	repo.On("ReadBudget", mock.Anything, int64(5), int64(7)).
		Return(&models.Budget{ID: 5, UserID: 7}, nil)
	repo.On("UpdateExpense", mock.Anything, mock.Anything, int64(11), int64(7)).
		Return(int64(1), nil)
	cache.On("Invalidate", budget.ViewCacheKey(3)).Return(nil)
	cache.On("Invalidate", budget.ViewCacheKey(5)).Return(nil)

	count, err := svc.Update(context.Background(), 7, 11, models.DummyExpense{
		Amount:      50,
		Description: "dinner",
		Category:    "food",
		Date:        "2024-01-16",
		BudgetID:    ptrInt64(5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	cache.AssertExpectations(t)
}

func TestMonthlyTotal_InvalidMonth(t *testing.T) {
	svc := New(new(MockRepository), new(MockCache), discardLogger())

	_, err := svc.MonthlyTotal(context.Background(), 7, 2024, 13)
	assert.Error(t, err)
}

func TestMonthlyTotal(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	repo.On("MonthlyTotal", mock.Anything, int64(7), 2024, time.January).Return(327.5, nil)

	total, err := svc.MonthlyTotal(context.Background(), 7, 2024, 1)
	require.NoError(t, err)
	assert.InDelta(t, 327.5, total, 1e-9)
}

func TestCategoryTotals_PassesRangeToRepository(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	repo.On("CategoryTotals", mock.Anything, int64(7), from, to).
		Return([]*models.CategoryTotal{{Category: "food", Total: 120}}, nil)

	totals, err := svc.CategoryTotals(context.Background(), 7, from, to)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "food", totals[0].Category)
}

func TestCategoryTotals_InvalidRange(t *testing.T) {
	repo := new(MockRepository)
	svc := New(repo, new(MockCache), discardLogger())

	from := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CategoryTotals(context.Background(), 7, from, to)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "CategoryTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Хранилище должно удовлетворять контракту сервиса.
var _ Repository = (*storage.Storage)(nil)

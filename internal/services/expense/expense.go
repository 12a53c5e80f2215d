// Package expense реализует бизнес-логику расходов: CRUD, привязку к бюджетам
// и сводки по месяцам и категориям.
package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
	"github.com/magabrotheeeer/budget-tracker/internal/services/budget"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

// ErrBudgetNotFound возвращается при попытке привязать расход к чужому
// или несуществующему бюджету.
var ErrBudgetNotFound = errors.New("budget not found")

// Repository описывает контракт хранилища, нужный сервису расходов.
type Repository interface {
	CreateExpense(ctx context.Context, expense models.Expense) (int64, error)
	ReadExpense(ctx context.Context, id, userID int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense models.Expense, id, userID int64) (int64, error)
	RemoveExpense(ctx context.Context, id, userID int64) (int64, error)
	ListExpenses(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error)
	ReadBudget(ctx context.Context, id, userID int64) (*models.Budget, error)
	MonthlyTotal(ctx context.Context, userID int64, year int, month time.Month) (float64, error)
	CategoryTotals(ctx context.Context, userID int64, from, to time.Time) ([]*models.CategoryTotal, error)
}

// Cache описывает контракт кэша представлений бюджетов.
type Cache interface {
	Invalidate(key string) error
}

// Service реализует операции над расходами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый сервис расходов.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create валидирует входные данные и создаёт расход. Привязка к бюджету
// допускается только к бюджету того же пользователя.
func (s *Service) Create(ctx context.Context, userID int64, req models.DummyExpense) (int64, error) {
	expense, err := s.fromRequest(ctx, userID, req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return 0, err
	}
	s.invalidateBudget(expense.BudgetID)
	return id, nil
}

// Read возвращает расход пользователя.
func (s *Service) Read(ctx context.Context, userID, id int64) (*models.Expense, error) {
	return s.repo.ReadExpense(ctx, id, userID)
}

// Update валидирует входные данные и обновляет расход пользователя.
// Кэш инвалидируется и для старого, и для нового бюджета.
func (s *Service) Update(ctx context.Context, userID, id int64, req models.DummyExpense) (int64, error) {
	old, err := s.repo.ReadExpense(ctx, id, userID)
	if err != nil {
		return 0, err
	}

	expense, err := s.fromRequest(ctx, userID, req)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.UpdateExpense(ctx, expense, id, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateBudget(old.BudgetID)
	s.invalidateBudget(expense.BudgetID)
	return count, nil
}

// Remove удаляет расход пользователя.
func (s *Service) Remove(ctx context.Context, userID, id int64) (int64, error) {
	old, err := s.repo.ReadExpense(ctx, id, userID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.RemoveExpense(ctx, id, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateBudget(old.BudgetID)
	return count, nil
}

// List возвращает расходы пользователя постранично, новые первыми.
func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error) {
	return s.repo.ListExpenses(ctx, userID, limit, offset)
}

// MonthlyTotal возвращает сумму расходов пользователя за указанный месяц.
func (s *Service) MonthlyTotal(ctx context.Context, userID int64, year, month int) (float64, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("invalid month: %d", month)
	}
	return s.repo.MonthlyTotal(ctx, userID, year, time.Month(month))
}

// CategoryTotals возвращает суммы расходов пользователя по категориям за период.
func (s *Service) CategoryTotals(ctx context.Context, userID int64, from, to time.Time) ([]*models.CategoryTotal, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid date range: %s is after %s", from.Format(budget.DateLayout), to.Format(budget.DateLayout))
	}
	return s.repo.CategoryTotals(ctx, userID, from, to)
}

func (s *Service) fromRequest(ctx context.Context, userID int64, req models.DummyExpense) (models.Expense, error) {
	date, err := time.Parse(budget.DateLayout, req.Date)
	if err != nil {
		return models.Expense{}, fmt.Errorf("invalid date: %w", err)
	}

	if req.BudgetID != nil {
		if _, err := s.repo.ReadBudget(ctx, *req.BudgetID, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return models.Expense{}, ErrBudgetNotFound
			}
			return models.Expense{}, err
		}
	}

	return models.Expense{
		UserID:      userID,
		BudgetID:    req.BudgetID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}, nil
}

func (s *Service) invalidateBudget(budgetID *int64) {
	if budgetID == nil {
		return
	}
	cacheKey := budget.ViewCacheKey(*budgetID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate budget view", slog.String("key", cacheKey), sl.Err(err))
	}
}

// Package budget реализует бизнес-логику бюджетов: CRUD поверх хранилища
// и движок агрегации, вычисляющий потраченное, остаток и процент исполнения.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

// DateLayout - формат дат во входящих запросах.
const DateLayout = "2006-01-02"

// ErrInvalidDateRange возвращается, если дата окончания не позже даты начала.
var ErrInvalidDateRange = errors.New("end date must be after start date")

// Repository описывает контракт хранилища, нужный сервису бюджетов.
type Repository interface {
	CreateBudget(ctx context.Context, budget models.Budget) (int64, error)
	ReadBudget(ctx context.Context, id, userID int64) (*models.Budget, error)
	UpdateBudget(ctx context.Context, budget models.Budget, id, userID int64) (int64, error)
	RemoveBudget(ctx context.Context, id, userID int64) (int64, error)
	ListBudgets(ctx context.Context, userID int64, status string) ([]*models.Budget, error)
	ListActiveBudgets(ctx context.Context, userID int64) ([]*models.Budget, error)
	ListExpensesByBudget(ctx context.Context, budgetID, userID int64) ([]*models.Expense, error)
	ListAssignedExpenses(ctx context.Context, userID int64) ([]*models.Expense, error)
}

// Cache описывает контракт кэша вычисленных представлений.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции над бюджетами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый сервис бюджетов.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ViewCacheKey - ключ кэша развёрнутого представления бюджета.
// Формат разделяют сервисы бюджетов и расходов: мутация расхода
// инвалидирует представление привязанного бюджета.
func ViewCacheKey(budgetID int64) string {
	return fmt.Sprintf("budgetview:%d", budgetID)
}

// ComputeView вычисляет производные поля бюджета по списку его расходов.
// Чистая функция: никаких обращений к хранилищу. При нулевом лимите процент
// исполнения равен нулю - явная ветка, чтобы не плодить NaN.
func ComputeView(budget models.Budget, expenses []*models.Expense) models.BudgetView {
	var totalSpent float64
	for _, e := range expenses {
		totalSpent += e.Amount
	}

	var progress float64
	if budget.Amount > 0 {
		progress = totalSpent / budget.Amount * 100
	}

	return models.BudgetView{
		Budget:             budget,
		TotalSpent:         totalSpent,
		Remaining:          budget.Amount - totalSpent,
		ProgressPercentage: progress,
	}
}

// Summary возвращает представления всех активных бюджетов пользователя,
// новые первыми. Расходы группируются по бюджету за один проход.
func (s *Service) Summary(ctx context.Context, userID int64) ([]*models.BudgetView, error) {
	budgets, err := s.repo.ListActiveBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListAssignedExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	byBudget := make(map[int64][]*models.Expense, len(budgets))
	for _, e := range expenses {
		if e.BudgetID == nil {
			continue
		}
		byBudget[*e.BudgetID] = append(byBudget[*e.BudgetID], e)
	}

	result := make([]*models.BudgetView, 0, len(budgets))
	for _, b := range budgets {
		view := ComputeView(*b, byBudget[b.ID])
		result = append(result, &view)
	}
	return result, nil
}

// CategoryRollup агрегирует активные бюджеты пользователя по категориям,
// упорядочивая по total_budgeted по убыванию.
func (s *Service) CategoryRollup(ctx context.Context, userID int64) ([]*models.CategoryRollup, error) {
	views, err := s.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*models.CategoryRollup)
	order := make([]string, 0)
	for _, v := range views {
		rollup, ok := byCategory[v.Category]
		if !ok {
			rollup = &models.CategoryRollup{Category: v.Category}
			byCategory[v.Category] = rollup
			order = append(order, v.Category)
		}
		rollup.BudgetCount++
		rollup.TotalBudgeted += v.Amount
		rollup.TotalSpent += v.TotalSpent
	}

	result := make([]*models.CategoryRollup, 0, len(byCategory))
	for _, category := range order {
		result = append(result, byCategory[category])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalBudgeted > result[j].TotalBudgeted
	})
	return result, nil
}

// Details возвращает бюджет с расходами и вычисленными полями.
func (s *Service) Details(ctx context.Context, id, userID int64) (*models.BudgetDetails, error) {
	budget, err := s.repo.ReadBudget(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	cacheKey := ViewCacheKey(id)
	var cached models.BudgetDetails
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read budget view from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found && cached.UserID == userID {
		return &cached, nil
	}

	expenses, err := s.repo.ListExpensesByBudget(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	details := &models.BudgetDetails{
		BudgetView: ComputeView(*budget, expenses),
		Expenses:   expenses,
	}
	if err := s.cache.Set(cacheKey, details, time.Hour); err != nil {
		s.log.Warn("failed to cache budget view", slog.String("key", cacheKey), sl.Err(err))
	}
	return details, nil
}

// Create валидирует входные данные и создаёт бюджет со статусом active.
func (s *Service) Create(ctx context.Context, userID int64, req models.DummyBudget) (int64, error) {
	budget, err := s.fromRequest(userID, req)
	if err != nil {
		return 0, err
	}
	budget.Status = models.StatusActive

	id, err := s.repo.CreateBudget(ctx, budget)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new budget", slog.Int64("id", id), slog.Int64("user_id", userID))
	return id, nil
}

// Update валидирует входные данные и обновляет бюджет пользователя.
func (s *Service) Update(ctx context.Context, userID, id int64, req models.DummyBudget) (int64, error) {
	budget, err := s.fromRequest(userID, req)
	if err != nil {
		return 0, err
	}
	if req.Status != "" {
		budget.Status = req.Status
	} else {
		budget.Status = models.StatusActive
	}

	count, err := s.repo.UpdateBudget(ctx, budget, id, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateView(id)
	return count, nil
}

// Remove удаляет бюджет пользователя. Привязанные расходы не трогаются:
// база снимает с них ссылку на бюджет.
func (s *Service) Remove(ctx context.Context, userID, id int64) (int64, error) {
	count, err := s.repo.RemoveBudget(ctx, id, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateView(id)
	return count, nil
}

// List возвращает бюджеты пользователя, отфильтрованные по статусу.
func (s *Service) List(ctx context.Context, userID int64, status string) ([]*models.Budget, error) {
	return s.repo.ListBudgets(ctx, userID, status)
}

// TogglePause переключает бюджет active<->paused и возвращает обновлённый бюджет.
// Завершённый бюджет не трогается.
func (s *Service) TogglePause(ctx context.Context, userID, id int64) (*models.Budget, error) {
	budget, err := s.repo.ReadBudget(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	switch budget.Status {
	case models.StatusActive:
		budget.Status = models.StatusPaused
	case models.StatusPaused:
		budget.Status = models.StatusActive
	default:
		return nil, fmt.Errorf("budget.TogglePause: cannot pause %s budget", budget.Status)
	}

	if _, err := s.repo.UpdateBudget(ctx, *budget, id, userID); err != nil {
		return nil, err
	}
	s.invalidateView(id)
	return budget, nil
}

func (s *Service) fromRequest(userID int64, req models.DummyBudget) (models.Budget, error) {
	startDate, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		return models.Budget{}, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse(DateLayout, req.EndDate)
	if err != nil {
		return models.Budget{}, fmt.Errorf("invalid end date: %w", err)
	}
	if !endDate.After(startDate) {
		return models.Budget{}, ErrInvalidDateRange
	}

	period := req.Period
	if period == "" {
		period = models.PeriodMonthly
	}

	return models.Budget{
		UserID:      userID,
		Name:        req.Name,
		Category:    req.Category,
		Amount:      req.Amount,
		Period:      period,
		StartDate:   startDate,
		EndDate:     endDate,
		IsRecurring: req.IsRecurring,
	}, nil
}

func (s *Service) invalidateView(id int64) {
	cacheKey := ViewCacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate budget view", slog.String("key", cacheKey), sl.Err(err))
	}
}

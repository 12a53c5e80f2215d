// Package roller перевыпускает истёкшие повторяющиеся бюджеты:
// закрывает старый период и создаёт бюджет на следующий.
package roller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/budget-tracker/internal/lib/daterange"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

// Repository описывает контракт хранилища, нужный роллеру.
type Repository interface {
	ListExpiredRecurringBudgets(ctx context.Context, asOf time.Time) ([]*models.Budget, error)
	RollBudget(ctx context.Context, oldID int64, successor models.Budget) (int64, error)
}

// Service перевыпускает бюджеты по расписанию или по запросу.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый сервис перевыпуска бюджетов.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Run обрабатывает все повторяющиеся бюджеты, истёкшие к моменту asOf.
// Ошибка одного бюджета не останавливает обработку остальных: успешно
// созданные преемники возвращаются вместе с объединённой ошибкой.
// Бюджет, уже перевыпущенный конкурентным запуском, молча пропускается.
func (s *Service) Run(ctx context.Context, asOf time.Time) ([]*models.Budget, error) {
	const op = "roller.Run"

	expired, err := s.repo.ListExpiredRecurringBudgets(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(expired) == 0 {
		return nil, nil
	}

	created := make([]*models.Budget, 0, len(expired))
	var errs []error
	for _, old := range expired {
		successor, err := s.successorOf(old)
		if err != nil {
			s.log.Error("failed to build successor budget",
				slog.Int64("budget_id", old.ID), sl.Err(err))
			errs = append(errs, fmt.Errorf("budget %d: %w", old.ID, err))
			continue
		}

		id, err := s.repo.RollBudget(ctx, old.ID, successor)
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyRolled) {
				s.log.Debug("budget already rolled", slog.Int64("budget_id", old.ID))
				continue
			}
			s.log.Error("failed to roll budget",
				slog.Int64("budget_id", old.ID), sl.Err(err))
			errs = append(errs, fmt.Errorf("budget %d: %w", old.ID, err))
			continue
		}

		successor.ID = id
		created = append(created, &successor)
		s.log.Info("rolled budget into next period",
			slog.Int64("budget_id", old.ID),
			slog.Int64("successor_id", id),
			slog.Time("start_date", successor.StartDate),
			slog.Time("end_date", successor.EndDate))
	}
	return created, errors.Join(errs...)
}

// RunEvery запускает перевыпуск сразу и далее с заданным интервалом,
// пока контекст не будет отменён.
func (s *Service) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Run(ctx, time.Now().UTC()); err != nil {
			s.log.Error("roll pass finished with errors", sl.Err(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// successorOf строит бюджет на следующий период: тот же лимит, категория
// и флаг повторения, статус active, без расходов.
func (s *Service) successorOf(old *models.Budget) (models.Budget, error) {
	startDate, endDate, err := daterange.NextPeriod(old.Period, old.EndDate)
	if err != nil {
		return models.Budget{}, err
	}
	return models.Budget{
		UserID:      old.UserID,
		Name:        old.Name,
		Category:    old.Category,
		Amount:      old.Amount,
		Period:      old.Period,
		StartDate:   startDate,
		EndDate:     endDate,
		IsRecurring: true,
		Status:      models.StatusActive,
	}, nil
}

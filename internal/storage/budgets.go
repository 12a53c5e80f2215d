package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

const budgetColumns = `id, user_id, name, category, amount, period, start_date, end_date,
			  is_recurring, status, created_at`

func scanBudget(row interface{ Scan(...any) error }) (*models.Budget, error) {
	var b models.Budget
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Category, &b.Amount, &b.Period,
		&b.StartDate, &b.EndDate, &b.IsRecurring, &b.Status, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBudget вставляет новую запись бюджета и возвращает её ID.
func (s *Storage) CreateBudget(ctx context.Context, budget models.Budget) (int64, error) {
	const op = "storage.CreateBudget"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO budgets (user_id, name, category, amount, period, start_date,
			      end_date, is_recurring, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		budget.UserID, budget.Name, budget.Category, budget.Amount, budget.Period,
		budget.StartDate, budget.EndDate, budget.IsRecurring, budget.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadBudget возвращает бюджет по ID, если он принадлежит пользователю.
func (s *Storage) ReadBudget(ctx context.Context, id, userID int64) (*models.Budget, error) {
	const op = "storage.ReadBudget"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + budgetColumns + `
			  FROM budgets
			  WHERE id = $1 AND user_id = $2`
	result, err := scanBudget(s.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateBudget обновляет данные бюджета и возвращает количество изменённых строк.
func (s *Storage) UpdateBudget(ctx context.Context, budget models.Budget, id, userID int64) (int64, error) {
	const op = "storage.UpdateBudget"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE budgets
			  SET name = $1, category = $2, amount = $3, period = $4,
			      start_date = $5, end_date = $6, is_recurring = $7, status = $8
			  WHERE id = $9 AND user_id = $10`
	result, err := s.DB.ExecContext(ctx, query,
		budget.Name, budget.Category, budget.Amount, budget.Period,
		budget.StartDate, budget.EndDate, budget.IsRecurring, budget.Status, id, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveBudget удаляет бюджет пользователя и возвращает количество удалённых строк.
// Привязанные расходы не удаляются: внешний ключ настроен ON DELETE SET NULL.
func (s *Storage) RemoveBudget(ctx context.Context, id, userID int64) (int64, error) {
	const op = "storage.RemoveBudget"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListBudgets возвращает бюджеты пользователя с фильтром по статусу,
// новые первыми. Пустой статус или "all" - без фильтра.
func (s *Storage) ListBudgets(ctx context.Context, userID int64, status string) ([]*models.Budget, error) {
	const op = "storage.ListBudgets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + budgetColumns + `
			  FROM budgets
			  WHERE user_id = $1
			    AND ($2::text = 'all' OR status = $2)
			  ORDER BY created_at DESC`
	if status == "" {
		status = "all"
	}
	rows, err := s.DB.QueryContext(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Budget
	for rows.Next() {
		item, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListActiveBudgets возвращает активные бюджеты пользователя, новые первыми.
func (s *Storage) ListActiveBudgets(ctx context.Context, userID int64) ([]*models.Budget, error) {
	return s.ListBudgets(ctx, userID, models.StatusActive)
}

// ListExpiredRecurringBudgets возвращает повторяющиеся активные бюджеты,
// у которых дата окончания строго раньше asOf.
func (s *Storage) ListExpiredRecurringBudgets(ctx context.Context, asOf time.Time) ([]*models.Budget, error) {
	const op = "storage.ListExpiredRecurringBudgets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + budgetColumns + `
			  FROM budgets
			  WHERE is_recurring = true
			    AND status = $1
			    AND end_date < $2`
	rows, err := s.DB.QueryContext(ctx, query, models.StatusActive, asOf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Budget
	for rows.Next() {
		item, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkBudgetStatus выставляет статус бюджета и возвращает количество изменённых строк.
func (s *Storage) MarkBudgetStatus(ctx context.Context, id int64, status string) (int64, error) {
	const op = "storage.MarkBudgetStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE budgets SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RollBudget в одной транзакции закрывает истекший бюджет и создаёт его преемника.
// Статус меняется первым с условием status = 'active': если другая инвокация
// уже закрыла бюджет, транзакция откатывается и возвращается ErrAlreadyRolled,
// поэтому два преемника для одного истечения появиться не могут.
func (s *Storage) RollBudget(ctx context.Context, oldID int64, successor models.Budget) (int64, error) {
	const op = "storage.RollBudget"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE budgets SET status = $1 WHERE id = $2 AND status = $3`,
		models.StatusCompleted, oldID, models.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrAlreadyRolled)
	}

	var newID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO budgets (user_id, name, category, amount, period, start_date,
			 end_date, is_recurring, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		successor.UserID, successor.Name, successor.Category, successor.Amount,
		successor.Period, successor.StartDate, successor.EndDate,
		successor.IsRecurring, successor.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

const expenseColumns = `id, user_id, amount, description, category, date, budget_id, created_at`

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var e models.Expense
	var budgetID sql.NullInt64
	if err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category,
		&e.Date, &budgetID, &e.CreatedAt); err != nil {
		return nil, err
	}
	if budgetID.Valid {
		e.BudgetID = &budgetID.Int64
	}
	return &e, nil
}

// CreateExpense вставляет новую запись расхода и возвращает её ID.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (int64, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (user_id, amount, description, category, date, budget_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		expense.UserID, expense.Amount, expense.Description, expense.Category,
		expense.Date, expense.BudgetID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadExpense возвращает расход по ID, если он принадлежит пользователю.
func (s *Storage) ReadExpense(ctx context.Context, id, userID int64) (*models.Expense, error) {
	const op = "storage.ReadExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + expenseColumns + `
			  FROM expenses
			  WHERE id = $1 AND user_id = $2`
	result, err := scanExpense(s.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateExpense обновляет запись расхода и возвращает количество изменённых строк.
func (s *Storage) UpdateExpense(ctx context.Context, expense models.Expense, id, userID int64) (int64, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE expenses
			  SET amount = $1, description = $2, category = $3, date = $4, budget_id = $5
			  WHERE id = $6 AND user_id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		expense.Amount, expense.Description, expense.Category, expense.Date,
		expense.BudgetID, id, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveExpense удаляет расход пользователя и возвращает количество удалённых строк.
func (s *Storage) RemoveExpense(ctx context.Context, id, userID int64) (int64, error) {
	const op = "storage.RemoveExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`
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

// ListExpenses возвращает расходы пользователя с пагинацией, свежие первыми.
func (s *Storage) ListExpenses(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + expenseColumns + `
			  FROM expenses
			  WHERE user_id = $1
			  ORDER BY date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		item, err := scanExpense(rows)
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

// ListExpensesByBudget возвращает расходы, привязанные к бюджету пользователя.
func (s *Storage) ListExpensesByBudget(ctx context.Context, budgetID, userID int64) ([]*models.Expense, error) {
	const op = "storage.ListExpensesByBudget"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + expenseColumns + `
			  FROM expenses
			  WHERE budget_id = $1 AND user_id = $2
			  ORDER BY date DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, budgetID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		item, err := scanExpense(rows)
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

// ListAssignedExpenses возвращает все расходы пользователя, привязанные хоть к какому-то бюджету.
// Используется движком агрегации для построения сводки за один проход.
func (s *Storage) ListAssignedExpenses(ctx context.Context, userID int64) ([]*models.Expense, error) {
	const op = "storage.ListAssignedExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + expenseColumns + `
			  FROM expenses
			  WHERE user_id = $1 AND budget_id IS NOT NULL`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		item, err := scanExpense(rows)
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

// MonthlyTotal подсчитывает сумму расходов пользователя за указанный месяц.
func (s *Storage) MonthlyTotal(ctx context.Context, userID int64, year int, month time.Month) (float64, error) {
	const op = "storage.MonthlyTotal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM expenses
			  WHERE user_id = $1
			    AND EXTRACT(YEAR FROM date) = $2
			    AND EXTRACT(MONTH FROM date) = $3`
	var total float64
	if err := s.DB.QueryRowContext(ctx, query, userID, year, int(month)).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// CategoryTotals подсчитывает суммы расходов пользователя по категориям за период.
func (s *Storage) CategoryTotals(ctx context.Context, userID int64, from, to time.Time) ([]*models.CategoryTotal, error) {
	const op = "storage.CategoryTotals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT category, SUM(amount) AS total
			  FROM expenses
			  WHERE user_id = $1 AND date BETWEEN $2 AND $3
			  GROUP BY category
			  ORDER BY total DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ct)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

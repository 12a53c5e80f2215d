package models

import "time"

// Expense представляет одну запись расхода пользователя.
// Поле BudgetID может быть nil — расход не привязан ни к одному бюджету.
type Expense struct {
	ID          int64     `json:"id"`                  // Уникальный идентификатор
	UserID      int64     `json:"user_id"`             // Владелец расхода
	Amount      float64   `json:"amount"`              // Сумма расхода (>0)
	Description string    `json:"description"`         // Описание
	Category    string    `json:"category"`            // Категория
	Date        time.Time `json:"date"`                // Дата расхода
	BudgetID    *int64    `json:"budget_id,omitempty"` // Привязанный бюджет (опционально)
	CreatedAt   time.Time `json:"created_at"`          // Дата создания записи
}

// DummyExpense используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Expense.
type DummyExpense struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`              // Сумма (>0)
	Description string  `json:"description" validate:"required,max=255"`      // Описание
	Category    string  `json:"category" validate:"required,max=100"`         // Категория
	Date        string  `json:"date" validate:"required"`                     // Дата в формате 2006-01-02
	BudgetID    *int64  `json:"budget_id"`                                    // Бюджет (опционально)
}

// CategoryTotal - сумма расходов по одной категории за период.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

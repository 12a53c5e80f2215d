package models

// BudgetView - бюджет вместе с вычисляемыми полями, которые не хранятся в базе.
// Remaining может быть отрицательным, если расходы превысили лимит.
type BudgetView struct {
	Budget
	TotalSpent         float64 `json:"total_spent"`
	Remaining          float64 `json:"remaining"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// BudgetDetails - развёрнутый ответ по одному бюджету: вычисляемые поля
// плюс список привязанных расходов.
type BudgetDetails struct {
	BudgetView
	Expenses []*Expense `json:"expenses"`
}

// CategoryRollup - агрегат активных бюджетов пользователя по категории.
type CategoryRollup struct {
	Category      string  `json:"category"`
	BudgetCount   int     `json:"budget_count"`
	TotalBudgeted float64 `json:"total_budgeted"`
	TotalSpent    float64 `json:"total_spent"`
}

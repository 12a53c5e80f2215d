// Package models содержит доменные структуры, описывающие бюджет,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import "time"

// Значения периода бюджета.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// Значения статуса бюджета.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// Budget представляет собой основную модель бюджета,
// используемую в бизнес-логике и хранилище.
// Инвариант: EndDate строго позже StartDate, Amount > 0.
type Budget struct {
	ID          int64     `json:"id"`           // Уникальный идентификатор
	UserID      int64     `json:"user_id"`      // Владелец бюджета
	Name        string    `json:"name"`         // Название бюджета
	Category    string    `json:"category"`     // Категория расходов
	Amount      float64   `json:"amount"`       // Лимит бюджета
	Period      string    `json:"period"`       // Период: weekly, monthly или yearly
	StartDate   time.Time `json:"start_date"`   // Начало периода
	EndDate     time.Time `json:"end_date"`     // Конец периода
	IsRecurring bool      `json:"is_recurring"` // Пересоздаётся ли бюджет после истечения
	Status      string    `json:"status"`       // active, paused или completed
	CreatedAt   time.Time `json:"created_at"`   // Дата создания
}

// DummyBudget используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Budget.
// Даты приходят в виде строк формата 2006-01-02, чтобы их можно было валидировать и парсить вручную.
type DummyBudget struct {
	Name        string  `json:"name" validate:"required,max=255"`                   // Название бюджета
	Category    string  `json:"category" validate:"required,max=100"`               // Категория
	Amount      float64 `json:"amount" validate:"required,gt=0"`                    // Лимит (>0)
	Period      string  `json:"period" validate:"omitempty,oneof=weekly monthly yearly"` // Период
	StartDate   string  `json:"start_date" validate:"required"`                     // Начало периода, 2006-01-02
	EndDate     string  `json:"end_date" validate:"required"`                       // Конец периода, 2006-01-02
	IsRecurring bool    `json:"is_recurring"`                                       // Флаг пересоздания
	Status      string  `json:"status" validate:"omitempty,oneof=active paused completed"` // Статус (только при обновлении)
}

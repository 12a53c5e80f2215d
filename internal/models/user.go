// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     `json:"id"`         // Уникальный идентификатор пользователя
	Name         string    `json:"name"`       // Имя пользователя
	Email        string    `json:"email"`      // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`          // Хэш пароля пользователя, наружу не отдаётся
	CreatedAt    time.Time `json:"created_at"` // Дата создания учётной записи
}

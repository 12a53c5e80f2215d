// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями, бюджетами и расходами. Предоставляет методы
// создания, чтения, обновления, удаления и агрегирования записей.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound возвращается, когда запись не существует или не принадлежит
// запрашивающему пользователю. Наружу эти два случая неразличимы.
var ErrNotFound = errors.New("storage: not found")

// ErrAlreadyRolled возвращается из RollBudget, если бюджет уже был закрыт
// другим вызовом: статус к моменту транзакции не равен active.
var ErrAlreadyRolled = errors.New("storage: budget already rolled")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, бюджетами и расходами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает соединение с базой данных.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'budgets'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table budgets missing or query error: %w", err)
	}
	return nil
}

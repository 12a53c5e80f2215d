// Package auth содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/budget-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/password"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Несуществующий пользователь и неверный пароль наружу неразличимы.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken возвращается при попытке регистрации на занятую почту.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID возвращает пользователя по ID или ошибку, если не найден.
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и выдачу JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и сразу выдаёт токен, как при обычном входе.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.User, string, error) {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	id, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	token, err := s.jwtMaker.GenerateToken(id, email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser возвращает данные пользователя по его ID.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth.GetUser: %w", err)
	}
	return user, nil
}

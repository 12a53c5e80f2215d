package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/budget-tracker/internal/models"
	"github.com/magabrotheeeer/budget-tracker/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	args := m.Called(ctx, email, rawPassword)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.String(1), args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	validBody := Request{
		Email:    "alice@example.com",
		Password: "secret123",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		checkBody      func(*testing.T, string)
	}{
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"invalid request body"}`, body)
			},
		},
		{
			name:           "ошибка валидации - отсутствует пароль",
			requestBody:    Request{Email: "alice@example.com"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "field Password is a required field")
			},
		},
		{
			name:        "неверные учётные данные",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "secret123").
					Return(nil, "", auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"invalid email or password"}`, body)
			},
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "secret123").
					Return(nil, "", errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"failed to login"}`, body)
			},
		},
		{
			name:        "успешный вход",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice@example.com", "secret123").
					Return(&models.User{ID: 7, Name: "Alice", Email: "alice@example.com"}, "some.jwt.token", nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"token":"some.jwt.token"`)
				assert.Contains(t, body, `"email":"alice@example.com"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(logger, mockSvc)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkBody(t, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}

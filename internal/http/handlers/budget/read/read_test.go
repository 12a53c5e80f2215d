package read

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Details(ctx context.Context, id, userID int64) (*models.BudgetDetails, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BudgetDetails), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	details := &models.BudgetDetails{
		BudgetView: models.BudgetView{
			Budget: models.Budget{
				ID:        1,
				UserID:    7,
				Name:      "Groceries",
				Category:  "food",
				Amount:    500,
				Period:    models.PeriodMonthly,
				StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
				Status:    models.StatusActive,
			},
			TotalSpent:         120.5,
			Remaining:          379.5,
			ProgressPercentage: 24.1,
		},
		Expenses: []*models.Expense{},
	}

	tests := []struct {
		name           string
		idParam        string
		userID         int64
		setupMock      func(*MockService)
		expectedStatus int
		checkBody      func(*testing.T, string)
	}{
		{
			name:           "некорректный ID",
			idParam:        "abc",
			userID:         7,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"failed to decode id from url"}`, body)
			},
		},
		{
			name:    "бюджет не найден",
			idParam: "99",
			userID:  7,
			setupMock: func(m *MockService) {
				m.On("Details", mock.Anything, int64(99), int64(7)).
					Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"budget not found"}`, body)
			},
		},
		{
			name:    "ошибка сервиса",
			idParam: "1",
			userID:  7,
			setupMock: func(m *MockService) {
				m.On("Details", mock.Anything, int64(1), int64(7)).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"could not read budget"}`, body)
			},
		},
		{
			name:    "успешное чтение",
			idParam: "1",
			userID:  7,
			setupMock: func(m *MockService) {
				m.On("Details", mock.Anything, int64(1), int64(7)).
					Return(details, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"total_spent":120.5`)
				assert.Contains(t, body, `"expenses":[]`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(logger, mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/"+tt.idParam, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.idParam)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkBody(t, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}

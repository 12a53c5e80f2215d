package categorysummary

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

// MockService реализует интерфейс categorysummary.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CategoryTotals(ctx context.Context, userID int64, from, to time.Time) ([]*models.CategoryTotal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CategoryTotal), args.Error(1)
}

func TestCategorySummaryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		userID         int64
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		checkBody      func(*testing.T, string)
	}{
		{
			name:           "нет параметров периода",
			userID:         7,
			query:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"start_date and end_date query parameters are required"}`, body)
			},
		},
		{
			name:           "нет end_date",
			userID:         7,
			query:          "?start_date=2024-01-01",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"start_date and end_date query parameters are required"}`, body)
			},
		},
		{
			name:           "некорректный формат даты",
			userID:         7,
			query:          "?start_date=31-01-2024&end_date=2024-02-01",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"start_date must be a date in format 2006-01-02"}`, body)
			},
		},
		{
			name:           "конец периода раньше начала",
			userID:         7,
			query:          "?start_date=2024-02-01&end_date=2024-01-01",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"end_date must not be before start_date"}`, body)
			},
		},
		{
			name:   "успешная сводка",
			userID: 7,
			query:  "?start_date=2024-01-01&end_date=2024-01-31",
			setupMock: func(m *MockService) {
				from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
				to := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
				m.On("CategoryTotals", mock.Anything, int64(7), from, to).
					Return([]*models.CategoryTotal{
						{Category: "food", Total: 320},
						{Category: "transport", Total: 80},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"category":"food"`)
				assert.Contains(t, body, `"total":320`)
				assert.Contains(t, body, `"count":2`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(logger, mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/summary/categories"+tt.query, nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.userID != 0 {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkBody(t, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}

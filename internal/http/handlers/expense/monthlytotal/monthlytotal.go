// Package monthlytotal реализует HTTP-обработчик подсчёта суммы расходов за месяц.
package monthlytotal

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/http/response"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
)

// Handler обрабатывает запросы на подсчёт суммы расходов за месяц.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчёта суммы за месяц.
type Service interface {
	MonthlyTotal(ctx context.Context, userID int64, year, month int) (float64, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сумма расходов за месяц
// @Description Возвращает сумму расходов пользователя за указанный месяц. Без параметров берётся текущий месяц.
// @Tags Expenses
// @Produce  json
// @Security BearerAuth
// @Param year query int false "Год" example(2024)
// @Param month query int false "Месяц (1-12)" example(1)
// @Success 200 {object} map[string]any "Сумма расходов"
// @Failure 400 {object} response.ErrorResponse "Некорректный год или месяц"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses/summary/monthly [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.monthlytotal"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	now := time.Now().UTC()
	year := now.Year()
	month := int(now.Month())

	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			log.Error("failed to decode year from query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid year"))
			return
		}
		year = v
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			log.Error("failed to decode month from query", slog.String("month", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid month"))
			return
		}
		month = v
	}

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	total, err := h.service.MonthlyTotal(r.Context(), userID, year, month)
	if err != nil {
		log.Error("failed to calculate monthly total", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not calculate monthly total"))
		return
	}

	log.Info("success to calculate monthly total", slog.Any("total", total))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"year":  year,
		"month": month,
		"total": total,
	}))
}

// Package rollrecurring реализует HTTP-обработчик ручного запуска перевыпуска
// истёкших повторяющихся бюджетов.
//
// Обычно перевыпуск выполняется фоновым воркером, но эндпоинт позволяет
// запустить проход немедленно. Повторный вызов безопасен: уже перевыпущенные
// бюджеты пропускаются.
package rollrecurring

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-tracker/internal/http/response"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

// Handler обрабатывает запросы на запуск перевыпуска бюджетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики перевыпуска бюджетов.
type Service interface {
	Run(ctx context.Context, asOf time.Time) ([]*models.Budget, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Перевыпустить истёкшие повторяющиеся бюджеты
// @Description Закрывает истёкшие повторяющиеся бюджеты и создаёт бюджеты на следующий период. Возвращает созданные записи.
// @Tags Budgets
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Созданные бюджеты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Часть бюджетов перевыпустить не удалось"
// @Router /budgets/roll [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.rollrecurring"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	created, err := h.service.Run(r.Context(), time.Now().UTC())
	if err != nil {
		log.Error("roll pass finished with errors", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("some budgets could not be rolled"))
		return
	}

	log.Info("roll pass finished", slog.Int("created", len(created)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"created": created,
		"count":   len(created),
	}))
}

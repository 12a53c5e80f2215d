// Package create реализует HTTP-обработчик для создания новых бюджетов пользователя.
//
// Handler принимает JSON-запрос с данными бюджета, валидирует их, извлекает
// идентификатор пользователя из контекста, вызывает бизнес-логику создания
// бюджета через сервис и возвращает ID созданной записи в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/http/response"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
	"github.com/magabrotheeeer/budget-tracker/internal/services/budget"
)

// Handler управляет HTTP-запросами на создание новых бюджетов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания бюджетов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания бюджета.
type Service interface {
	Create(ctx context.Context, userID int64, req models.DummyBudget) (int64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новый бюджет
// @Description Создает новый бюджет для текущего пользователя. Возвращает ID созданной записи.
// @Tags Budgets
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyBudget true "Данные нового бюджета"
// @Success 200 {object} map[string]any "Успешное создание бюджета"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или диапазон дат"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании бюджета"
// @Router /budgets [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBudget
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, budget.ErrInvalidDateRange) {
			log.Error("invalid date range", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("end date must be after start date"))
			return
		}
		log.Error("failed to create budget", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create budget"))
		return
	}

	log.Info("success to create budget", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"last_added_id": id,
	}))
}

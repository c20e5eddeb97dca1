// Package subjectcreate реализует обработчик добавления предмета в семестр.
// Диапазоны оценки и юнитов проверяются здесь, на границе, и повторно
// внутри сервиса журнала.
package subjectcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/renzmontano/grade-tracker/internal/http-server/mware"
	"github.com/renzmontano/grade-tracker/internal/http-server/response"
	"github.com/renzmontano/grade-tracker/internal/lib/sl"
	"github.com/renzmontano/grade-tracker/internal/models"
	"github.com/renzmontano/grade-tracker/internal/services/ledger"
)

// SubjectCreater описывает сервис добавления предмета.
type SubjectCreater interface {
	CreateSubject(ctx context.Context, userUID string, req models.DummySubject) (int64, error)
}

// Handler обрабатывает запросы добавления предмета.
type Handler struct {
	log      *slog.Logger
	service  SubjectCreater
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service SubjectCreater) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subjectcreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(mware.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	var req models.DummySubject
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Int64("semester_id", req.SemesterID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.CreateSubject(r.Context(), userUID, req)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			log.Info("semester not found", slog.Int64("semester_id", req.SemesterID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("semester not found"))
		case errors.Is(err, ledger.ErrGradeOutOfRange), errors.Is(err, ledger.ErrUnitsNotPositive):
			log.Info("subject rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to create subject", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

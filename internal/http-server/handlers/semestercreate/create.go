// Package semestercreate реализует обработчик создания семестра.
package semestercreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/renzmontano/grade-tracker/internal/http-server/mware"
	"github.com/renzmontano/grade-tracker/internal/http-server/response"
	"github.com/renzmontano/grade-tracker/internal/lib/sl"
	"github.com/renzmontano/grade-tracker/internal/models"
)

// SemesterCreater описывает сервис создания семестра.
type SemesterCreater interface {
	CreateSemester(ctx context.Context, userUID, name string) (int64, error)
}

// Handler обрабатывает запросы создания семестра.
type Handler struct {
	log      *slog.Logger
	service  SemesterCreater
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service SemesterCreater) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.semestercreate"

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

	var req models.DummySemester
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.CreateSemester(r.Context(), userUID, req.Name)
	if err != nil {
		log.Error("failed to create semester", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

// Package semesterlist реализует обработчик выдачи всех семестров
// пользователя вместе с предметами и GPA по каждому семестру.
package semesterlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/renzmontano/grade-tracker/internal/http-server/mware"
	"github.com/renzmontano/grade-tracker/internal/http-server/response"
	"github.com/renzmontano/grade-tracker/internal/lib/sl"
	"github.com/renzmontano/grade-tracker/internal/models"
)

// SemesterLister описывает сервис выдачи семестров пользователя.
type SemesterLister interface {
	ListSemesters(ctx context.Context, userUID string) ([]models.SemesterView, error)
}

// Handler обрабатывает запросы списка семестров.
type Handler struct {
	log     *slog.Logger
	service SemesterLister
}

// New создает новый Handler.
func New(log *slog.Logger, service SemesterLister) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.semesterlist"

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

	semesters, err := h.service.ListSemesters(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list semesters", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"semesters": semesters,
	}))
}

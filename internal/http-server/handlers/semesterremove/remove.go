// Package semesterremove реализует обработчик удаления семестра.
// Вместе с семестром каскадно удаляются все его предметы.
package semesterremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/renzmontano/grade-tracker/internal/http-server/mware"
	"github.com/renzmontano/grade-tracker/internal/http-server/response"
	"github.com/renzmontano/grade-tracker/internal/lib/sl"
	"github.com/renzmontano/grade-tracker/internal/services/ledger"
)

// SemesterRemover описывает сервис удаления семестра.
type SemesterRemover interface {
	RemoveSemester(ctx context.Context, userUID string, id int64) error
}

// Handler обрабатывает запросы удаления семестра.
type Handler struct {
	log     *slog.Logger
	service SemesterRemover
}

// New создает новый Handler.
func New(log *slog.Logger, service SemesterRemover) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.semesterremove"

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

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid semester id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid semester id"))
		return
	}

	if err := h.service.RemoveSemester(r.Context(), userUID, id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			log.Info("semester not found", slog.Int64("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("semester not found"))
			return
		}
		log.Error("failed to remove semester", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OK())
}

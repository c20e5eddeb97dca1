// Package subjectread реализует обработчик выдачи одного предмета,
// например для предзаполнения формы редактирования.
package subjectread

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
	"github.com/renzmontano/grade-tracker/internal/models"
	"github.com/renzmontano/grade-tracker/internal/services/ledger"
)

// SubjectReader описывает сервис чтения предмета.
type SubjectReader interface {
	ReadSubject(ctx context.Context, userUID string, id int64) (*models.Subject, error)
}

// Handler обрабатывает запросы чтения предмета.
type Handler struct {
	log     *slog.Logger
	service SubjectReader
}

// New создает новый Handler.
func New(log *slog.Logger, service SubjectReader) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subjectread"

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
		log.Error("invalid subject id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subject id"))
		return
	}

	subject, err := h.service.ReadSubject(r.Context(), userUID, id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			log.Info("subject not found", slog.Int64("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("subject not found"))
			return
		}
		log.Error("failed to read subject", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(subject))
}

// Package summary реализует обработчик выдачи итоговых показателей:
// накопительный GWA, сумма юнитов и статус Latin Honors.
package summary

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

// Summarizer описывает сервис расчёта сводки успеваемости.
type Summarizer interface {
	Summary(ctx context.Context, userUID string) (*models.Summary, error)
}

// Handler обрабатывает запросы сводки.
type Handler struct {
	log     *slog.Logger
	service Summarizer
}

// New создает новый Handler.
func New(log *slog.Logger, service Summarizer) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.summary"

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

	result, err := h.service.Summary(r.Context(), userUID)
	if err != nil {
		log.Error("failed to compute summary", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(result))
}

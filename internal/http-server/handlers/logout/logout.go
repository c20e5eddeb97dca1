// Package logout реализует обработчик выхода: предъявленный токен
// попадает в чёрный список до момента своего истечения.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/renzmontano/grade-tracker/internal/http-server/mware"
	"github.com/renzmontano/grade-tracker/internal/http-server/response"
	"github.com/renzmontano/grade-tracker/internal/lib/sl"
)

// Revoker описывает сервис отзыва токенов.
type Revoker interface {
	Logout(ctx context.Context, tokenStr string) error
}

// Handler обрабатывает запросы выхода.
type Handler struct {
	log     *slog.Logger
	service Revoker
}

// New создает новый Handler.
func New(log *slog.Logger, service Revoker) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tokenStr, ok := r.Context().Value(mware.Token).(string)
	if !ok || tokenStr == "" {
		log.Error("token missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	if err := h.service.Logout(r.Context(), tokenStr); err != nil {
		log.Error("failed to revoke token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	log.Info("user logged out")

	render.JSON(w, r, response.OK())
}

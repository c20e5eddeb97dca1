// Package login реализует обработчик входа пользователя по имени или почте.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/renzmontano/grade-tracker/internal/http-server/response"
	"github.com/renzmontano/grade-tracker/internal/lib/sl"
	"github.com/renzmontano/grade-tracker/internal/models"
	"github.com/renzmontano/grade-tracker/internal/services/auth"
)

// Request — входные данные для входа. Login принимает имя пользователя или почту.
type Request struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Authenticator описывает сервис проверки учётных данных.
type Authenticator interface {
	Login(ctx context.Context, login, rawPassword string) (string, *models.User, error)
}

// Handler обрабатывает запросы входа.
type Handler struct {
	log      *slog.Logger
	service  Authenticator
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Authenticator) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	token, user, err := h.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("invalid credentials", slog.String("login", req.Login))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid username or password"))
			return
		}
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	log.Info("user logged in", slog.String("username", user.Username))

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":     token,
		"username":  user.Username,
		"full_name": user.FullName,
		"email":     user.Email,
	}))
}

package register_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/register"
	"github.com/renzmontano/grade-tracker/internal/http-server/response"
	"github.com/renzmontano/grade-tracker/internal/services/auth"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger { return slog.New(discardHandler{}) }

type mockRegistrar struct {
	RegisterFunc func(ctx context.Context, username, email, rawPassword, fullName string) (string, error)
}

func (m *mockRegistrar) Register(ctx context.Context, username, email, rawPassword, fullName string) (string, error) {
	return m.RegisterFunc(ctx, username, email, rawPassword, fullName)
}

func TestRegisterHandler(t *testing.T) {
	validBody := func() []byte {
		b, _ := json.Marshal(register.Request{
			Username: "testuser",
			Email:    "test@example.com",
			Password: "secret123",
			FullName: "Test User",
		})
		return b
	}

	t.Run("success", func(t *testing.T) {
		mock := &mockRegistrar{
			RegisterFunc: func(_ context.Context, username, email, _, fullName string) (string, error) {
				require.Equal(t, "testuser", username)
				require.Equal(t, "test@example.com", email)
				require.Equal(t, "Test User", fullName)
				return "new-uid", nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(validBody()))
		w := httptest.NewRecorder()

		register.New(makeLogger(), mock).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)
		assert.Equal(t, "new-uid", resp.Data.(map[string]any)["uid"])
	})

	t.Run("duplicate identity", func(t *testing.T) {
		mock := &mockRegistrar{
			RegisterFunc: func(context.Context, string, string, string, string) (string, error) {
				return "", auth.ErrUserExists
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(validBody()))
		w := httptest.NewRecorder()

		register.New(makeLogger(), mock).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already taken")
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		b, _ := json.Marshal(register.Request{
			Username: "testuser",
			Email:    "not-an-email",
			Password: "secret123",
			FullName: "Test User",
		})

		mock := &mockRegistrar{
			RegisterFunc: func(context.Context, string, string, string, string) (string, error) {
				t.Fatal("Register should not be called on validation error")
				return "", nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(b))
		w := httptest.NewRecorder()

		register.New(makeLogger(), mock).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "field Email")
	})

	t.Run("short password rejected", func(t *testing.T) {
		b, _ := json.Marshal(register.Request{
			Username: "testuser",
			Email:    "test@example.com",
			Password: "123",
			FullName: "Test User",
		})

		mock := &mockRegistrar{
			RegisterFunc: func(context.Context, string, string, string, string) (string, error) {
				t.Fatal("Register should not be called on validation error")
				return "", nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(b))
		w := httptest.NewRecorder()

		register.New(makeLogger(), mock).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

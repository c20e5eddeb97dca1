package subjectremove_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/subjectremove"
	"github.com/renzmontano/grade-tracker/internal/http-server/mware"
	"github.com/renzmontano/grade-tracker/internal/services/ledger"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger { return slog.New(discardHandler{}) }

type mockRemover struct {
	RemoveFunc func(ctx context.Context, userUID string, id int64) error
}

func (m *mockRemover) RemoveSubject(ctx context.Context, userUID string, id int64) error {
	return m.RemoveFunc(ctx, userUID, id)
}

func newRequestWithUser(idParam string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/subjects/"+idParam, nil)
	ctx := context.WithValue(req.Context(), mware.UserUID, "user-1")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", idParam)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return req.WithContext(ctx)
}

func TestSubjectRemoveHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := &mockRemover{
			RemoveFunc: func(_ context.Context, userUID string, id int64) error {
				require.Equal(t, "user-1", userUID)
				require.Equal(t, int64(21), id)
				return nil
			},
		}

		w := httptest.NewRecorder()
		subjectremove.New(makeLogger(), mock).ServeHTTP(w, newRequestWithUser("21"))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"OK"`)
	})

	t.Run("not found or not owned", func(t *testing.T) {
		mock := &mockRemover{
			RemoveFunc: func(context.Context, string, int64) error {
				return ledger.ErrNotFound
			},
		}

		w := httptest.NewRecorder()
		subjectremove.New(makeLogger(), mock).ServeHTTP(w, newRequestWithUser("21"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "subject not found")
	})

	t.Run("invalid id param", func(t *testing.T) {
		mock := &mockRemover{
			RemoveFunc: func(context.Context, string, int64) error {
				t.Fatal("RemoveSubject should not be called with bad id")
				return nil
			},
		}

		w := httptest.NewRecorder()
		subjectremove.New(makeLogger(), mock).ServeHTTP(w, newRequestWithUser("bad"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid subject id")
	})

	t.Run("internal error", func(t *testing.T) {
		mock := &mockRemover{
			RemoveFunc: func(context.Context, string, int64) error {
				return errors.New("database unavailable")
			},
		}

		w := httptest.NewRecorder()
		subjectremove.New(makeLogger(), mock).ServeHTTP(w, newRequestWithUser("21"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal error")
	})
}

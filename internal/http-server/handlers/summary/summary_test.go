package summary_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renzmontano/grade-tracker/internal/http-server/handlers/summary"
	"github.com/renzmontano/grade-tracker/internal/http-server/mware"
	"github.com/renzmontano/grade-tracker/internal/http-server/response"
	"github.com/renzmontano/grade-tracker/internal/lib/grades"
	"github.com/renzmontano/grade-tracker/internal/models"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger { return slog.New(discardHandler{}) }

type mockSummarizer struct {
	SummaryFunc func(ctx context.Context, userUID string) (*models.Summary, error)
}

func (m *mockSummarizer) Summary(ctx context.Context, userUID string) (*models.Summary, error) {
	return m.SummaryFunc(ctx, userUID)
}

func newRequestWithUser(userUID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	ctx := context.WithValue(req.Context(), mware.UserUID, userUID)
	return req.WithContext(ctx)
}

func TestSummaryHandler(t *testing.T) {
	t.Run("success returns computed summary", func(t *testing.T) {
		mock := &mockSummarizer{
			SummaryFunc: func(_ context.Context, userUID string) (*models.Summary, error) {
				require.Equal(t, "user-1", userUID)
				return &models.Summary{GWA: 1.35, TotalUnits: 21, Honor: grades.MagnaCumLaude}, nil
			},
		}

		w := httptest.NewRecorder()
		summary.New(makeLogger(), mock).ServeHTTP(w, newRequestWithUser("user-1"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.InDelta(t, 1.35, data["gwa"], 1e-9)
		assert.InDelta(t, 21.0, data["total_units"], 1e-9)
		assert.Equal(t, grades.MagnaCumLaude, data["latin_honor"])
	})

	t.Run("missing user context", func(t *testing.T) {
		mock := &mockSummarizer{
			SummaryFunc: func(context.Context, string) (*models.Summary, error) {
				t.Fatal("Summary should not be called without a user")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/summary", nil)
		w := httptest.NewRecorder()
		summary.New(makeLogger(), mock).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "not authenticated")
	})

	t.Run("service failure", func(t *testing.T) {
		mock := &mockSummarizer{
			SummaryFunc: func(context.Context, string) (*models.Summary, error) {
				return nil, errors.New("cache is down")
			},
		}

		w := httptest.NewRecorder()
		summary.New(makeLogger(), mock).ServeHTTP(w, newRequestWithUser("user-1"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal error")
		assert.NotContains(t, w.Body.String(), "cache is down")
	})
}

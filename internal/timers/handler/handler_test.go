package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"keepsake/internal/timers/handler/mocks"
	"keepsake/internal/timers/models"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/timekit"
)

//go:generate mockgen -source=handler.go -destination=mocks/timer-mocks.go -package=mocks Service

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mockService, logger, nil, time.UTC, nil), mockService
}

func TestHandleStatuses(t *testing.T) {
	handler, mockService := newTestHandler(t)
	elapsed := timekit.Elapsed{Months: 1, Days: 1}
	mockService.EXPECT().Statuses(gomock.Any()).Return([]models.Status{
		{
			View:    models.View{ID: uuid.NewString(), Kind: models.KindElapsed, Label: "Together", Date: "2025-01-31"},
			Elapsed: &elapsed,
		},
	}, nil)

	w := httptest.NewRecorder()
	handler.handleStatuses(w, httptest.NewRequest(http.MethodGet, "/timers", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	timers := resp["timers"].([]any)
	require.Len(t, timers, 1)
	first := timers[0].(map[string]any)
	assert.Equal(t, "elapsed", first["kind"])
	assert.Equal(t, map[string]any{"years": float64(0), "months": float64(1), "days": float64(1)}, first["elapsed"])
	assert.NotContains(t, first, "countdown")
}

func TestHandleCreate(t *testing.T) {
	t.Run("returns the created timer", func(t *testing.T) {
		handler, mockService := newTestHandler(t)
		timerID := id.TimerID(uuid.New())
		mockService.EXPECT().Create(gomock.Any(), &models.CreateRequest{
			Kind:  models.KindCountdown,
			Label: "Next meetup",
			Date:  "2025-07-09",
		}).Return(&models.Timer{
			ID:    timerID,
			Kind:  models.KindCountdown,
			Label: "Next meetup",
			Date:  time.Date(2025, time.July, 9, 0, 0, 0, 0, time.UTC),
		}, nil)

		body, err := json.Marshal(models.CreateRequest{Kind: models.KindCountdown, Label: "Next meetup", Date: "2025-07-09"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler.handleCreate(w, httptest.NewRequest(http.MethodPost, "/timers", bytes.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, timerID.String(), resp["id"])
		assert.Equal(t, "2025-07-09", resp["date"])
	})

	t.Run("maps validation failures", func(t *testing.T) {
		handler, mockService := newTestHandler(t)
		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidInput, "kind must be elapsed or countdown"))

		body, err := json.Marshal(models.CreateRequest{Kind: "stopwatch", Label: "x", Date: "2025-07-09"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler.handleCreate(w, httptest.NewRequest(http.MethodPost, "/timers", bytes.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleUpdate(t *testing.T) {
	t.Run("parses the id from the route", func(t *testing.T) {
		handler, mockService := newTestHandler(t)
		timerID := id.TimerID(uuid.New())
		mockService.EXPECT().Update(gomock.Any(), timerID, &models.UpdateRequest{Label: "Tokyo trip"}).
			Return(&models.Timer{ID: timerID, Kind: models.KindCountdown, Label: "Tokyo trip", Date: time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)}, nil)

		r := chi.NewRouter()
		handler.Register(r)

		body, err := json.Marshal(models.UpdateRequest{Label: "Tokyo trip"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/timers/"+timerID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer ignored")
		w := httptest.NewRecorder()

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", timerID.String())
		handler.handleUpdate(w, requestWithRouteContext(req, rctx))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		handler, _ := newTestHandler(t)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "not-a-uuid")
		req := requestWithRouteContext(httptest.NewRequest(http.MethodPut, "/timers/not-a-uuid", bytes.NewReader([]byte(`{}`))), rctx)

		w := httptest.NewRecorder()
		handler.handleUpdate(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleDelete(t *testing.T) {
	handler, mockService := newTestHandler(t)
	timerID := id.TimerID(uuid.New())
	mockService.EXPECT().Delete(gomock.Any(), timerID).Return(nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", timerID.String())
	req := requestWithRouteContext(httptest.NewRequest(http.MethodDelete, "/timers/"+timerID.String(), nil), rctx)

	w := httptest.NewRecorder()
	handler.handleDelete(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func requestWithRouteContext(req *http.Request, rctx *chi.Context) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

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

	"keepsake/internal/notes/handler/mocks"
	"keepsake/internal/notes/models"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/note-mocks.go -package=mocks Service

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mockService, logger, nil, nil), mockService
}

func TestHandleList(t *testing.T) {
	handler, mockService := newTestHandler(t)
	mockService.EXPECT().List(gomock.Any()).Return([]*models.Note{
		{ID: id.NoteID(uuid.New()), Content: "pinned one", Author: "Pat", Pinned: true, CreatedAt: time.Now()},
		{ID: id.NoteID(uuid.New()), Content: "regular one", Author: "Sam", CreatedAt: time.Now()},
	}, nil)

	w := httptest.NewRecorder()
	handler.handleList(w, httptest.NewRequest(http.MethodGet, "/notes", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	notes := resp["notes"].([]any)
	require.Len(t, notes, 2)
	first := notes[0].(map[string]any)
	assert.Equal(t, "pinned one", first["content"])
	assert.Equal(t, true, first["pinned"])
}

func TestHandleCreate(t *testing.T) {
	t.Run("returns the created note", func(t *testing.T) {
		handler, mockService := newTestHandler(t)
		noteID := id.NoteID(uuid.New())
		mockService.EXPECT().Create(gomock.Any(), &models.CreateRequest{Content: "hello", Author: "Pat"}).
			Return(&models.Note{ID: noteID, Content: "hello", Author: "Pat", CreatedAt: time.Now()}, nil)

		body, err := json.Marshal(models.CreateRequest{Content: "hello", Author: "Pat"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler.handleCreate(w, httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, noteID.String(), resp["id"])
	})

	t.Run("maps validation failures", func(t *testing.T) {
		handler, mockService := newTestHandler(t)
		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidInput, "content is required"))

		w := httptest.NewRecorder()
		handler.handleCreate(w, httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader([]byte(`{"author":"Pat"}`))))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandlePin(t *testing.T) {
	handler, mockService := newTestHandler(t)
	noteID := id.NoteID(uuid.New())
	mockService.EXPECT().SetPinned(gomock.Any(), noteID, true).
		Return(&models.Note{ID: noteID, Content: "hello", Author: "Pat", Pinned: true}, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", noteID.String())
	req := requestWithRouteContext(httptest.NewRequest(http.MethodPut, "/notes/"+noteID.String()+"/pin", bytes.NewReader([]byte(`{"pinned":true}`))), rctx)

	w := httptest.NewRecorder()
	handler.handlePin(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["pinned"])
}

func TestHandleDelete(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		handler, mockService := newTestHandler(t)
		noteID := id.NoteID(uuid.New())
		mockService.EXPECT().Delete(gomock.Any(), noteID).Return(nil)

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", noteID.String())
		req := requestWithRouteContext(httptest.NewRequest(http.MethodDelete, "/notes/"+noteID.String(), nil), rctx)

		w := httptest.NewRecorder()
		handler.handleDelete(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		handler, _ := newTestHandler(t)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "nope")
		req := requestWithRouteContext(httptest.NewRequest(http.MethodDelete, "/notes/nope", nil), rctx)

		w := httptest.NewRecorder()
		handler.handleDelete(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func requestWithRouteContext(req *http.Request, rctx *chi.Context) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

package approve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unilocal/unilocal/internal/services/moderation"
)

// MockService реализует интерфейс approve.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Approve(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestApproveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		placeID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное одобрение",
			placeID: "p1",
			setupMock: func(m *MockService) {
				m.On("Approve", mock.Anything, "p1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"place approved"`,
		},
		{
			name:    "заявка не найдена",
			placeID: "ghost",
			setupMock: func(m *MockService) {
				m.On("Approve", mock.Anything, "ghost").Return(moderation.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"place not found"`,
		},
		{
			name:    "заявка уже получила решение",
			placeID: "p2",
			setupMock: func(m *MockService) {
				m.On("Approve", mock.Anything, "p2").Return(moderation.ErrNotPending)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"place already has a decision"`,
		},
		{
			name:    "ошибка хранилища",
			placeID: "p3",
			setupMock: func(m *MockService) {
				m.On("Approve", mock.Anything, "p3").Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not approve place"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/moderation/places/"+tt.placeID+"/approve", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.placeID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

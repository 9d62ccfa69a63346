package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unilocal/unilocal/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListByStatus(ctx context.Context, status models.PlaceStatus) ([]*models.Place, error) {
	args := m.Called(ctx, status)
	if res := args.Get(0); res != nil {
		return res.([]*models.Place), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) ListAll(ctx context.Context) ([]*models.Place, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Place), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	pending := []*models.Place{
		{ID: "p1", Name: "Café Central", Status: models.StatusPending},
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "список ожидающих заявок",
			url:  "/moderation/places?status=pending",
			setupMock: func(m *MockService) {
				m.On("ListByStatus", mock.Anything, models.StatusPending).Return(pending, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Café Central"`,
		},
		{
			name: "без фильтра возвращаются все заявки",
			url:  "/moderation/places",
			setupMock: func(m *MockService) {
				m.On("ListAll", mock.Anything).Return(pending, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"places"`,
		},
		{
			name:           "неизвестный статус",
			url:            "/moderation/places?status=bogus",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"unknown status filter"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

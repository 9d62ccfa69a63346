package submit

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

	"github.com/unilocal/unilocal/internal/http/middlewarectx"
	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/services/draft"
)

// MockService реализует интерфейс submit.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, username string) (*models.Place, error) {
	args := m.Called(ctx, username)
	if res := args.Get(0); res != nil {
		return res.(*models.Place), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSubmitHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная отправка",
			username: "ana_r",
			setupMock: func(m *MockService) {
				place := &models.Place{ID: "p1", Name: "Café Central", Status: models.StatusPending}
				m.On("Submit", mock.Anything, "ana_r").Return(place, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"PENDING"`,
		},
		{
			name:     "черновик не на шаге просмотра",
			username: "ana_r",
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, "ana_r").Return(nil, draft.ErrNotReady)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"draft is not on the review step"`,
		},
		{
			name:           "нет пользователя в контексте",
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"user identification missing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/drafts/submit", nil)
			if tt.username != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

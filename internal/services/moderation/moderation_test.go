package moderation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unilocal/unilocal/internal/models"
	"github.com/unilocal/unilocal/internal/rabbitmq"
	"github.com/unilocal/unilocal/internal/storage/repository"
)

type PlacesMock struct{ mock.Mock }

func (m *PlacesMock) ReadPlace(ctx context.Context, id string) (*models.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}
func (m *PlacesMock) ListPlacesByStatus(ctx context.Context, status models.PlaceStatus) ([]*models.Place, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *PlacesMock) ListAllPlaces(ctx context.Context) ([]*models.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *PlacesMock) UpdatePlaceStatus(ctx context.Context, id string, status models.PlaceStatus) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}
func (m *PlacesMock) CountPlacesByStatus(ctx context.Context) (*models.ModerationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModerationStats), args.Error(1)
}

type ProfilesMock struct{ mock.Mock }

func (m *ProfilesMock) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newTestService(places *PlacesMock, profiles *ProfilesMock,
	cache *CacheMock, publisher *PublisherMock) *ModerationService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewModerationService(places, profiles, cache, publisher, logger)
}

func pendingPlace(id string) *models.Place {
	return &models.Place{
		ID:          id,
		Name:        "Café Central",
		Category:    "Cafetería",
		SubmittedBy: "ana_r",
		Status:      models.StatusPending,
	}
}

func TestApprove_Success(t *testing.T) {
	places := new(PlacesMock)
	profiles := new(ProfilesMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)

	places.On("ReadPlace", mock.Anything, "p1").Return(pendingPlace("p1"), nil)
	places.On("UpdatePlaceStatus", mock.Anything, "p1", models.StatusApproved).Return(1, nil)
	cache.On("Invalidate", "moderation:stats").Return(nil)
	profiles.On("GetProfileByUsername", mock.Anything, "ana_r").
		Return(&models.Profile{Username: "ana_r", Email: "ana@test.com"}, nil)
	publisher.On("Publish", rabbitmq.ModerationDecisionRoutingKey, mock.MatchedBy(func(msg any) bool {
		m, ok := msg.(models.DecisionEmail)
		return ok && m.Email == "ana@test.com" && m.PlaceName == "Café Central" &&
			m.Status == models.StatusApproved
	})).Return(nil)

	svc := newTestService(places, profiles, cache, publisher)
	require.NoError(t, svc.Approve(context.Background(), "p1"))

	places.AssertExpectations(t)
	cache.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDecide_Conflicts(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*PlacesMock)
		wantErr   error
	}{
		{
			name: "заявка уже одобрена",
			setupMock: func(p *PlacesMock) {
				approved := pendingPlace("p1")
				approved.Status = models.StatusApproved
				p.On("ReadPlace", mock.Anything, "p1").Return(approved, nil)
				p.On("UpdatePlaceStatus", mock.Anything, "p1", models.StatusRejected).Return(0, nil)
			},
			wantErr: ErrNotPending,
		},
		{
			name: "заявка не существует",
			setupMock: func(p *PlacesMock) {
				p.On("ReadPlace", mock.Anything, "p1").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			places := new(PlacesMock)
			tt.setupMock(places)

			svc := newTestService(places, new(ProfilesMock), new(CacheMock), new(PublisherMock))
			err := svc.Reject(context.Background(), "p1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecide_NotificationFailureDoesNotUndoDecision(t *testing.T) {
	places := new(PlacesMock)
	profiles := new(ProfilesMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)

	places.On("ReadPlace", mock.Anything, "p1").Return(pendingPlace("p1"), nil)
	places.On("UpdatePlaceStatus", mock.Anything, "p1", models.StatusRejected).Return(1, nil)
	cache.On("Invalidate", "moderation:stats").Return(nil)
	profiles.On("GetProfileByUsername", mock.Anything, "ana_r").
		Return(&models.Profile{Username: "ana_r", Email: "ana@test.com"}, nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := newTestService(places, profiles, cache, publisher)
	require.NoError(t, svc.Reject(context.Background(), "p1"))
}

func TestListByStatus(t *testing.T) {
	places := new(PlacesMock)
	expected := []*models.Place{pendingPlace("p1"), pendingPlace("p2")}
	places.On("ListPlacesByStatus", mock.Anything, models.StatusPending).Return(expected, nil)

	svc := newTestService(places, new(ProfilesMock), new(CacheMock), new(PublisherMock))

	got, err := svc.ListByStatus(context.Background(), models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	_, err = svc.ListByStatus(context.Background(), models.PlaceStatus("BOGUS"))
	assert.Error(t, err)
}

func TestStats_CacheMissThenStore(t *testing.T) {
	places := new(PlacesMock)
	cache := new(CacheMock)

	expected := &models.ModerationStats{PendingCount: 3, ApprovedCount: 5, RejectedCount: 1}
	cache.On("Get", "moderation:stats", mock.Anything).Return(false, nil)
	places.On("CountPlacesByStatus", mock.Anything).Return(expected, nil)
	cache.On("Set", "moderation:stats", expected, time.Minute).Return(nil)

	svc := newTestService(places, new(ProfilesMock), cache, new(PublisherMock))

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, got)
	cache.AssertExpectations(t)
}

func TestStats_CacheHit(t *testing.T) {
	places := new(PlacesMock)
	cache := new(CacheMock)

	cache.On("Get", "moderation:stats", mock.Anything).
		Run(func(args mock.Arguments) {
			stats := args.Get(1).(*models.ModerationStats)
			stats.PendingCount = 7
		}).Return(true, nil)

	svc := newTestService(places, new(ProfilesMock), cache, new(PublisherMock))

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, got.PendingCount)
	places.AssertNotCalled(t, "CountPlacesByStatus", mock.Anything)
}

func TestGetApprovedPlace(t *testing.T) {
	places := new(PlacesMock)

	approved := pendingPlace("p1")
	approved.Status = models.StatusApproved
	places.On("ReadPlace", mock.Anything, "p1").Return(approved, nil)

	pending := pendingPlace("p2")
	places.On("ReadPlace", mock.Anything, "p2").Return(pending, nil)

	svc := newTestService(places, new(ProfilesMock), new(CacheMock), new(PublisherMock))

	got, err := svc.GetApprovedPlace(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = svc.GetApprovedPlace(context.Background(), "p2")
	assert.ErrorIs(t, err, ErrNotFound)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilocal/unilocal/internal/models"
)

func TestStorage_CreatePlaceAndReadPlace(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	submitted := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	place := models.Place{
		ID:          uuid.New().String(),
		Name:        "Café Central",
		Category:    "cafe",
		Description: "Кофейня у парка",
		Address:     "Cra 5 #10-20",
		Phone:       "+57 300 000 0000",
		Website:     "https://cafecentral.example.com",
		Hours: models.OpeningHours{
			WeekdayOpen:   "08:00",
			WeekdayClose:  "20:00",
			SaturdayOpen:  "09:00",
			SaturdayClose: "18:00",
			SundayOpen:    "",
			SundayClose:   "",
		},
		Photos:        []string{"p1.jpg", "p2.jpg"},
		SubmittedBy:   "ana_r",
		SubmittedDate: submitted,
		Status:        models.StatusPending,
	}

	err := storage.CreatePlace(context.Background(), place)
	require.NoError(t, err)

	verification := NewTestVerification(storage)
	verification.VerifyPlaceExists(t, place.ID)

	got, err := storage.ReadPlace(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, place.Name, got.Name)
	assert.Equal(t, place.Category, got.Category)
	assert.Equal(t, place.Hours, got.Hours)
	assert.Equal(t, place.Photos, got.Photos)
	assert.Equal(t, place.SubmittedBy, got.SubmittedBy)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.True(t, got.SubmittedDate.Equal(submitted))
}

func TestStorage_ReadPlace_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.ReadPlace(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_ListPlacesByStatus(t *testing.T) {
	type args struct {
		ctx    context.Context
		status models.PlaceStatus
	}

	baseDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		args      args
		wantNames []string
		wantErr   bool
		setup     func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "pending places newest first",
			args: args{
				ctx:    context.Background(),
				status: models.StatusPending,
			},
			wantNames: []string{"Museo del Oro", "Café Central"},
			wantErr:   false,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreatePlace(t, uuid.New().String(), "Café Central", "cafe",
					"ana_r", baseDate, models.StatusPending)
				factory.CreatePlace(t, uuid.New().String(), "Museo del Oro", "museum",
					"ana_r", baseDate.AddDate(0, 0, 1), models.StatusPending)
				factory.CreatePlace(t, uuid.New().String(), "Parque Nacional", "park",
					"carlos", baseDate.AddDate(0, 0, 2), models.StatusApproved)
			},
		},
		{
			name: "no places with requested status",
			args: args{
				ctx:    context.Background(),
				status: models.StatusRejected,
			},
			wantNames: nil,
			wantErr:   false,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreatePlace(t, uuid.New().String(), "Café Central", "cafe",
					"ana_r", baseDate, models.StatusPending)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.ListPlacesByStatus(tt.args.ctx, tt.args.status)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, place := range got {
				names = append(names, place.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestStorage_ListAllPlaces(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	baseDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	factory := NewTestDataFactory(storage)
	factory.CreatePlace(t, uuid.New().String(), "Café Central", "cafe",
		"ana_r", baseDate, models.StatusPending)
	factory.CreatePlace(t, uuid.New().String(), "Museo del Oro", "museum",
		"ana_r", baseDate.AddDate(0, 0, 1), models.StatusApproved)
	factory.CreatePlace(t, uuid.New().String(), "Parque Nacional", "park",
		"carlos", baseDate.AddDate(0, 0, 2), models.StatusRejected)

	got, err := storage.ListAllPlaces(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Parque Nacional", got[0].Name)
	assert.Equal(t, "Café Central", got[2].Name)
}

func TestStorage_UpdatePlaceStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	baseDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	placeID := uuid.New().String()
	factory := NewTestDataFactory(storage)
	factory.CreatePlace(t, placeID, "Café Central", "cafe",
		"ana_r", baseDate, models.StatusPending)

	verification := NewTestVerification(storage)

	count, err := storage.UpdatePlaceStatus(context.Background(), placeID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	verification.VerifyPlaceStatus(t, placeID, models.StatusApproved)

	// Повторное решение не затрагивает заявку с терминальным статусом
	count, err = storage.UpdatePlaceStatus(context.Background(), placeID, models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	verification.VerifyPlaceStatus(t, placeID, models.StatusApproved)

	count, err = storage.UpdatePlaceStatus(context.Background(), uuid.New().String(), models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_CountPlacesByStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	baseDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	factory := NewTestDataFactory(storage)
	factory.CreatePlace(t, uuid.New().String(), "Café Central", "cafe",
		"ana_r", baseDate, models.StatusPending)
	factory.CreatePlace(t, uuid.New().String(), "Museo del Oro", "museum",
		"ana_r", baseDate, models.StatusPending)
	factory.CreatePlace(t, uuid.New().String(), "Parque Nacional", "park",
		"carlos", baseDate, models.StatusApproved)

	stats, err := storage.CountPlacesByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PendingCount)
	assert.Equal(t, 1, stats.ApprovedCount)
	assert.Equal(t, 0, stats.RejectedCount)
}

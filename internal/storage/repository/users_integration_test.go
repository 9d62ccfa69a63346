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

func TestStorage_CreateUserAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	user := models.User{
		Email:        "ana@test.com",
		PasswordHash: "hashedpassword",
		Role:         "user",
	}

	uid, err := storage.CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	byEmail, err := storage.GetUserByEmail(context.Background(), "ana@test.com")
	require.NoError(t, err)
	assert.Equal(t, uid, byEmail.UID)
	assert.Equal(t, "user", byEmail.Role)
	assert.False(t, byEmail.Disabled)
	assert.Nil(t, byEmail.FederatedSubject)

	byID, err := storage.GetUserByID(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", byID.Email)

	_, err = storage.GetUserByEmail(context.Background(), "missing@test.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_GetUserByFederatedSubject(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	subject := "google-oauth2|1234567890"
	user := models.User{
		Email:            "carlos@test.com",
		PasswordHash:     "",
		Role:             "user",
		FederatedSubject: &subject,
	}

	uid, err := storage.CreateUser(context.Background(), user)
	require.NoError(t, err)

	got, err := storage.GetUserByFederatedSubject(context.Background(), subject)
	require.NoError(t, err)
	assert.Equal(t, uid, got.UID)
	require.NotNil(t, got.FederatedSubject)
	assert.Equal(t, subject, *got.FederatedSubject)

	_, err = storage.GetUserByFederatedSubject(context.Background(), "unknown-subject")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_SaveProfileAndLookup(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "ana@test.com", "hashedpassword", "user")

	profile := models.Profile{
		UserUID:  userUID,
		Name:     "Ana Ruiz",
		Username: "ana_r",
		Email:    "ana@test.com",
		City:     "Cali",
	}
	err := storage.SaveProfile(context.Background(), profile)
	require.NoError(t, err)

	got, err := storage.GetProfile(context.Background(), userUID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", got.Name)
	assert.Equal(t, "ana_r", got.Username)
	assert.Equal(t, "Cali", got.City)

	byUsername, err := storage.GetProfileByUsername(context.Background(), "ana_r")
	require.NoError(t, err)
	assert.Equal(t, userUID, byUsername.UserUID)

	exists, err := storage.UsernameExists(context.Background(), "ana_r")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = storage.UsernameExists(context.Background(), "someone_else")
	require.NoError(t, err)
	assert.False(t, exists)

	// Повторное сохранение перезаписывает профиль
	profile.City = "Bogotá"
	err = storage.SaveProfile(context.Background(), profile)
	require.NoError(t, err)

	got, err = storage.GetProfile(context.Background(), userUID)
	require.NoError(t, err)
	assert.Equal(t, "Bogotá", got.City)
}

func TestStorage_ResetTokens(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "ana@test.com", "hashedpassword", "user")

	token := models.ResetToken{
		Token:     uuid.New().String(),
		UserUID:   userUID,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	err := storage.SaveResetToken(context.Background(), token)
	require.NoError(t, err)

	got, err := storage.GetResetToken(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, userUID, got.UserUID)
	assert.WithinDuration(t, token.ExpiresAt, got.ExpiresAt, time.Second)

	_, err = storage.GetResetToken(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrNotFound)
}

package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilocal/unilocal/internal/navigation"
)

type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(key string, result any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, result)
}

func (c *memoryCache) Set(key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memoryCache) Invalidate(key string) error {
	delete(c.data, key)
	return nil
}

func newTestService() *SessionService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSessionService(newMemoryCache(), logger)
}

func TestStart(t *testing.T) {
	tests := []struct {
		name        string
		isModerator bool
		wantScreen  navigation.Screen
	}{
		{name: "обычный пользователь попадает на главный экран", isModerator: false, wantScreen: navigation.ScreenMain},
		{name: "модератор попадает на панель модерации", isModerator: true, wantScreen: navigation.ScreenModerator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()

			state, err := svc.Start(context.Background(), "ana_r", tt.isModerator)
			require.NoError(t, err)
			assert.Equal(t, string(tt.wantScreen), state.Screen)
			assert.Equal(t, tt.isModerator, state.IsModerator)
		})
	}
}

func TestNavigate_UnknownTargetFallsBackToLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Start(ctx, "ana_r", false)
	require.NoError(t, err)

	state, err := svc.Navigate(ctx, "ana_r", "detail")
	require.NoError(t, err)
	assert.Equal(t, string(navigation.ScreenDetail), state.Screen)

	state, err = svc.Navigate(ctx, "ana_r", "no_such_screen")
	require.NoError(t, err)
	assert.Equal(t, string(navigation.ScreenLogin), state.Screen)
}

func TestCurrent_MissingSessionIsLoginScreen(t *testing.T) {
	svc := newTestService()

	state, err := svc.Current(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, string(navigation.ScreenLogin), state.Screen)
	assert.False(t, state.IsModerator)
}

func TestEnd_DropsState(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Start(ctx, "ana_r", false)
	require.NoError(t, err)
	require.NoError(t, svc.End(ctx, "ana_r"))

	state, err := svc.Current(ctx, "ana_r")
	require.NoError(t, err)
	assert.Equal(t, string(navigation.ScreenLogin), state.Screen)
}

package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Screen
	}{
		{"известный экран", "moderator", ScreenModerator},
		{"главный экран", "main", ScreenMain},
		{"неизвестный экран закрывается на login", "settings", ScreenLogin},
		{"пустая строка", "", ScreenLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNavigator(t *testing.T) {
	nav := NewNavigator()
	assert.Equal(t, ScreenLogin, nav.Current())

	assert.Equal(t, ScreenRegister, nav.Navigate("register"))
	assert.Equal(t, ScreenRegister, nav.Current())

	// Переход разрешен с любого экрана на любой, без проверки достижимости.
	assert.Equal(t, ScreenCreate, nav.Navigate("create"))

	// Неизвестная цель не оставляет навигатор в прежнем состоянии.
	assert.Equal(t, ScreenLogin, nav.Navigate("no-such-screen"))
}

func TestRestore(t *testing.T) {
	assert.Equal(t, ScreenDetail, Restore("detail").Current())
	assert.Equal(t, ScreenLogin, Restore("garbage").Current())
}

package authkind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindUsernameTaken, "username ana_r already exists")
	assert.Equal(t, KindUsernameTaken, KindOf(err))

	wrapped := fmt.Errorf("services.auth.Register: %w", err)
	assert.Equal(t, KindUsernameTaken, KindOf(wrapped))

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain error")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestWrapKeepsChain(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap(KindNetwork, inner)

	assert.Equal(t, KindNetwork, KindOf(err))
	assert.ErrorIs(t, err, inner)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "username is already taken", KindUsernameTaken.Message())
	assert.Equal(t, "unknown error", KindUnknown.Message())
	assert.Equal(t, "unknown error", Kind("something-else").Message())
}

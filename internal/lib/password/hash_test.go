package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", hash)

	assert.NoError(t, CompareHash(hash, "Passw0rd"))
	assert.Error(t, CompareHash(hash, "wrongpass"))
}

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"валидный пароль", "Passw0rd", false},
		{"слишком короткий", "Pa0", true},
		{"без заглавной буквы", "passw0rd", true},
		{"без цифры", "Password", true},
		{"ровно восемь символов", "Abcdefg1", false},
		{"слабый пароль из сценария", "weak", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStrength(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWeak)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

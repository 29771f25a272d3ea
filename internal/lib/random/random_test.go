package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := VerificationCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	// шестизначных кодов 900000, сто подряд одинаковых — признак поломки
	assert.Greater(t, len(seen), 1)
}

func TestResetToken(t *testing.T) {
	first, err := ResetToken()
	require.NoError(t, err)
	second, err := ResetToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

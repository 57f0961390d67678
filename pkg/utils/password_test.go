package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=2$"))
	assert.NotContains(t, hash, "correct horse")

	ok, err := VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	a, err := HashPassword("p")
	require.NoError(t, err)
	b, err := HashPassword("p")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, hash := range []string{"", "plain", "$bcrypt$x$y$z$w", "$argon2id$v=19$garbage$c2FsdA$aGFzaA"} {
		ok, err := VerifyPassword("p", hash)
		assert.ErrorIs(t, err, ErrInvalidHash, hash)
		assert.False(t, ok)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "annlee", NormalizeUsername("  AnnLee "))
	assert.Equal(t, "a@x.com", NormalizeEmail("A@X.com"))
	assert.True(t, AnyBlank("a", "  "))
	assert.False(t, AnyBlank("a", "b"))
}

package auth_test

import (
	"testing"

	"futuboard/internal/auth"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, auth.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, auth.VerifyPassword("wrong password", hash))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := auth.HashPassword("password")
	assert.NoError(t, err)

	second, err := auth.HashPassword("password")
	assert.NoError(t, err)

	// bcrypt embeds a random salt, so two hashes of the same input differ
	assert.NotEqual(t, first, second)
	assert.True(t, auth.VerifyPassword("password", first))
	assert.True(t, auth.VerifyPassword("password", second))
}

package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse", hash)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.Error(t, CheckPassword(hash, "wrong horse"))
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.Error(t, CheckPassword("not-a-bcrypt-digest", "anything"))
}

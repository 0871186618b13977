package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndVerify(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("user-1", "jo@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

// The user id travels in the registered subject claim; both accessors must
// carry it after verification.
func TestManager_SubjectRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("user-9", "sam@example.com", false)
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	require.NotEmpty(t, claims.Subject)
	assert.Equal(t, claims.Subject, claims.UserID)

	// and the wire payload itself holds sub
	var raw jwt.MapClaims
	_, _, err = jwt.NewParser().ParseUnverified(token, &raw)
	require.NoError(t, err)
	assert.Equal(t, "user-9", raw["sub"])
}

func TestManager_NonAdminClaim(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("user-2", "ana@example.com", false)
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestManager_Garbled(t *testing.T) {
	m := NewManager("secret", time.Hour)

	_, err := m.VerifyAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	token, err := m.GenerateAccessToken("user-1", "jo@example.com", false)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestManager_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.GenerateAccessToken("user-1", "jo@example.com", false)
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsNonHMAC(t *testing.T) {
	m := NewManager("secret", time.Hour)

	// alg=none tokens must never verify
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(raw)
	assert.Error(t, err)
}

func TestManager_EmptySecret(t *testing.T) {
	m := NewManager("", time.Hour)

	_, err := m.GenerateAccessToken("user-1", "jo@example.com", false)
	assert.Error(t, err)
}

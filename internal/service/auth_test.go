package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func newAuthForTest(t *testing.T) *authService {
	t.Helper()
	a := NewAuthService(testDB(t), testSecret).(*authService)
	_, created, err := a.Seed("admin@glams.test", "admin", "Sup3r-secret")
	require.NoError(t, err)
	require.True(t, created)
	return a
}

func TestAuth_LoginIssues24hToken(t *testing.T) {
	a := newAuthForTest(t)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issued }

	token, admin, err := a.Login("admin@glams.test", "Sup3r-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin@glams.test", admin.Email)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued }))
	require.NoError(t, err)

	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "admin@glams.test", claims["email"])
	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64(24*60*60), exp-iat, "credential must be valid for exactly 24h")
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	a := newAuthForTest(t)
	token, _, err := a.Login("admin@glams.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuth_LoginUnknownEmail(t *testing.T) {
	a := newAuthForTest(t)
	token, _, err := a.Login("nobody@glams.test", "Sup3r-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuth_ParseToken_Valid(t *testing.T) {
	a := newAuthForTest(t)
	token, admin, err := a.Login("admin@glams.test", "Sup3r-secret")
	require.NoError(t, err)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.ID)
	assert.Equal(t, "admin@glams.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuth_ParseToken_Expired(t *testing.T) {
	a := newAuthForTest(t)
	a.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	token, _, err := a.Login("admin@glams.test", "Sup3r-secret")
	require.NoError(t, err)

	a.now = time.Now
	_, err = a.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuth_ParseToken_Tampered(t *testing.T) {
	a := newAuthForTest(t)
	token, _, err := a.Login("admin@glams.test", "Sup3r-secret")
	require.NoError(t, err)

	// Flip the last signature byte.
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}
	_, err = a.ParseToken(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuth_Profile(t *testing.T) {
	a := newAuthForTest(t)
	_, admin, err := a.Login("admin@glams.test", "Sup3r-secret")
	require.NoError(t, err)

	got, err := a.Profile(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.Email, got.Email)

	_, err = a.Profile(admin.ID + 999)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestAuth_SeedIsIdempotent(t *testing.T) {
	a := newAuthForTest(t)
	admin, created, err := a.Seed("admin@glams.test", "other", "different-pass")
	require.NoError(t, err)
	assert.False(t, created, "second seed must not create a new account")
	assert.Equal(t, "admin", admin.Name, "existing account must be left untouched")
}

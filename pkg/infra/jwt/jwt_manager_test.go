package jwt

import (
	"testing"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndDecode(t *testing.T) {
	m := NewJwtManager(&config.ServerConfig{SecretKey: "s3cret"})

	token, err := m.CreateToken("ops", time.Hour)
	require.NoError(t, err)

	require.NoError(t, m.ValidateToken(token))
	claims, err := m.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestManager_Expired(t *testing.T) {
	m := NewJwtManager(&config.ServerConfig{SecretKey: "s3cret"})
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	assert.ErrorIs(t, m.ValidateToken(token), ErrExpiredToken)
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := NewJwtManager(&config.ServerConfig{SecretKey: "other"}).CreateToken("ops", 0)
	require.NoError(t, err)

	err = NewJwtManager(&config.ServerConfig{SecretKey: "s3cret"}).ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RequiresAdminRole(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: "viewer"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	err = NewJwtManager(&config.ServerConfig{SecretKey: "s3cret"}).ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_NoSecret(t *testing.T) {
	m := NewJwtManager(&config.ServerConfig{})

	_, err := m.CreateToken("ops", 0)
	assert.ErrorIs(t, err, ErrNoSecret)
	assert.ErrorIs(t, m.ValidateToken("x.y.z"), ErrNoSecret)
}

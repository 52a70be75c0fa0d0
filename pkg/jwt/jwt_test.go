package jwt

import (
	"testing"
	"time"

	"clinic-agenda/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *JWTService {
	return NewJWTService(config.AuthConfig{JWTSecret: "super-secret", Audience: "authenticated"})
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := newService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "ana@clinic.test", time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@clinic.test", claims.Email)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newService()

	token, err := svc.GenerateToken(uuid.New(), "ana@clinic.test", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	other := NewJWTService(config.AuthConfig{JWTSecret: "other", Audience: "authenticated"})
	token, err := other.GenerateToken(uuid.New(), "ana@clinic.test", time.Minute)
	require.NoError(t, err)

	_, err = newService().ValidateToken(token)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	other := NewJWTService(config.AuthConfig{JWTSecret: "super-secret", Audience: "anon"})
	token, err := other.GenerateToken(uuid.New(), "ana@clinic.test", time.Minute)
	require.NoError(t, err)

	_, err = newService().ValidateToken(token)
	assert.ErrorIs(t, err, gojwt.ErrTokenInvalidAudience)
}

func TestValidateToken_NonUUIDSubject(t *testing.T) {
	claims := Claims{
		Email: "ana@clinic.test",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "service-role",
			Audience:  gojwt.ClaimStrings{"authenticated"},
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, err = newService().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "test-secret")
	assert.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.NotEmpty(t, claims.ID, "JTI must be set for the logout denylist")
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "test-secret")
	assert.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsOtherSigningMethods(t *testing.T) {
	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	// Same key, different HMAC alg: must not verify.
	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}

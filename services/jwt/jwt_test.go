package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anjali11s/prolance/services/jwt"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := jwt.GenerateToken(42, "test-secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwt.ValidateAndGetClaims(token, "test-secret")
	assert.NoError(t, err)

	userID, err := jwt.UserIDFromClaims(claims)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestGenerateToken_EmptySecret(t *testing.T) {
	_, err := jwt.GenerateToken(42, "")
	assert.Error(t, err)
}

func TestValidateAndGetClaims_WrongSecret(t *testing.T) {
	token, err := jwt.GenerateToken(42, "test-secret")
	assert.NoError(t, err)

	_, err = jwt.ValidateAndGetClaims(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateAndGetClaims_Garbage(t *testing.T) {
	_, err := jwt.ValidateAndGetClaims("not-a-token", "test-secret")
	assert.Error(t, err)
}

func TestUserIDFromClaims_MissingClaim(t *testing.T) {
	token, err := jwt.GenerateToken(42, "test-secret")
	assert.NoError(t, err)

	claims, err := jwt.ValidateAndGetClaims(token, "test-secret")
	assert.NoError(t, err)

	delete(claims, "id")
	_, err = jwt.UserIDFromClaims(claims)
	assert.Error(t, err)
}

package services

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qwerty-Alisha/ShopEase/models"
)

func TestTokenService_IssueAndDecode(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := &models.SanitizedUser{
		ID:    uuid.New(),
		Email: "jane@example.com",
		Role:  models.RoleCustomer,
	}

	token, err := svc.Issue(user)
	require.NoError(t, err)

	decoded, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, decoded.ID)
	assert.Equal(t, user.Email, decoded.Email)
	assert.Equal(t, user.Role, decoded.Role)
}

func TestTokenService_PayloadContainsNoCredentialMaterial(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := &models.User{
		ID:       uuid.New(),
		Email:    "jane@example.com",
		Role:     models.RoleCustomer,
		Password: []byte("derived-key-material"),
		Salt:     []byte("salt-material"),
	}

	token, err := svc.Issue(user.Sanitize())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), "salt")
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	token, err := svc.Issue(&models.SanitizedUser{ID: uuid.New(), Email: "a@b.c", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = svc.Decode(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	token, err := issuer.Issue(&models.SanitizedUser{ID: uuid.New(), Email: "a@b.c", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.Error(t, err)
}

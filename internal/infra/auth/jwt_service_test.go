package auth

import (
	"testing"
	"time"

	"identity/config"
	domainerrors "identity/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.SecretKey.AccessTTL = ttl

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("test_secret_key_very_long_for_testing", 0))
	require.NoError(t, err)

	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("", 0))
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domainerrors.ErrSigningSecretMissing)
}

func TestJWTService_RotatedSecretRejectsOldTokens(t *testing.T) {
	issuer, err := NewJWTService(testTokenConfig("old_secret_key_very_long_for_testing", 0))
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	verifier, err := NewJWTService(testTokenConfig("new_secret_key_very_long_for_testing", 0))
	require.NoError(t, err)

	subject, err := verifier.Verify(token)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, subject)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("test_secret_key_very_long_for_testing", 0))
	require.NoError(t, err)

	subject, err := svc.Verify("clearly-not-a-jwt-token")
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, subject)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("test_secret_key_very_long_for_testing", time.Nanosecond))
	require.NoError(t, err)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_ZeroTTLTokensDoNotExpire(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("test_secret_key_very_long_for_testing", 0))
	require.NoError(t, err)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Verify(token)
	assert.NoError(t, err)
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maxsplawski/cashcard-rest-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-chars-long"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}
}

func testSubject() TokenSubject {
	return TokenSubject{
		UserID:   uuid.New(),
		Username: "sarah1",
		Role:     "card-owner",
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(testAuthConfig())
	assert.NoError(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: "too-short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	subject := testSubject()
	token, err := svc.GenerateToken(context.Background(), subject)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, subject.UserID, claims.UserID)
	assert.Equal(t, "sarah1", claims.Username)
	assert.Equal(t, "card-owner", claims.Role)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, "sarah1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestValidateTokenExpiry(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl := svc.(*hmacJWTService)
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	impl.timeFunc = func() time.Time { return issued }

	token, err := svc.GenerateToken(context.Background(), testSubject())
	require.NoError(t, err)

	// Still valid just before expiry.
	impl.timeFunc = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = svc.ValidateToken(context.Background(), token)
	assert.NoError(t, err)

	// Inside the clock skew window past expiry.
	impl.timeFunc = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = svc.ValidateToken(context.Background(), token)
	assert.NoError(t, err)

	// Well past expiry plus skew.
	impl.timeFunc = func() time.Time { return issued.Add(63 * time.Minute) }
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), testSubject())
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "a-completely-different-32-char-secret!!",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)

		_, err = other.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("mutated payload", func(t *testing.T) {
		tampered := token[:len(token)-4] + "AAAA"
		_, err := svc.ValidateToken(context.Background(), tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)

	hashed, err := hasher.Hash("abc123xyz789")
	require.NoError(t, err)
	assert.NotEqual(t, "abc123xyz789", hashed)

	assert.NoError(t, hasher.Compare(hashed, "abc123xyz789"))
	assert.Error(t, hasher.Compare(hashed, "wrong-password"))
}

package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)
	id := uuid.New()

	token, err := svc.Issue(id)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	got, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, claims.IssuedAt.Add(24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestTokenService_UniqueJTI(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	id := uuid.New()

	a, err := svc.Issue(id)
	require.NoError(t, err)
	b, err := svc.Issue(id)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-48 * time.Hour)
	issuer := NewTokenService(testSecret, 24*time.Hour).WithClock(fixedClock(issuedAt))

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, 24*time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_NotYetValid(t *testing.T) {
	issuer := NewTokenService(testSecret, 24*time.Hour).WithClock(fixedClock(time.Now().Add(time.Hour)))

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, 24*time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestTokenService_Tampered(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("another-secret-that-is-also-32-bytes!!", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_Garbage(t *testing.T) {
	_, err := NewTokenService(testSecret, time.Hour).Validate("not.a.token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_UnexpectedAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_SubjectNotAccountID(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_MissingExpiry(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: uuid.New().String()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := NewTokenService(testSecret, time.Hour)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.True(t, svc.IsExpired(token))
}

func TestTokenService_DecodeUnsafe(t *testing.T) {
	id := uuid.New()
	token, err := NewTokenService("another-secret-that-is-also-32-bytes!!", time.Hour).Issue(id)
	require.NoError(t, err)

	svc := NewTokenService(testSecret, time.Hour)
	claims, err := svc.DecodeUnsafe(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)

	_, err = svc.DecodeUnsafe("garbage")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_IsExpired(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	fresh, err := svc.Issue(uuid.New())
	require.NoError(t, err)
	assert.False(t, svc.IsExpired(fresh))

	old, err := svc.WithClock(fixedClock(time.Now().Add(-2 * time.Hour))).Issue(uuid.New())
	require.NoError(t, err)
	assert.True(t, svc.IsExpired(old))

	assert.True(t, svc.IsExpired("garbage"))
}

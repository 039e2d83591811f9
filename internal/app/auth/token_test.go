package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manqiyou/manqiyou/internal/config"
	"github.com/manqiyou/manqiyou/internal/domain"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

func newTestTokenService() *TokenService {
	return NewTokenService(config.Auth{
		JwtSecret:              testSecret,
		TokenExpiration:        time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
	})
}

func assertUnauthorized(t *testing.T, err error, message string) {
	t.Helper()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusUnauthorized, domainErr.Code)
	assert.Equal(t, message, domainErr.Message)
}

func TestTokenService_UserTokens(t *testing.T) {
	s := newTestTokenService()

	pair, err := s.IssueUserTokens(&domain.User{Id: "user-1", Phone: "13800138000"})
	require.NoError(t, err)
	assert.Equal(t, domain.TokenTypeBearer, pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
	assert.NotEqual(t, pair.Token, pair.RefreshToken)

	info, err := s.ParseAccessToken(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.UserIdentifier("user-1"), info.Id)
	assert.Equal(t, "13800138000", info.Phone)
	assert.False(t, info.IsAdmin)

	id, err := s.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, domain.UserIdentifier("user-1"), id)
}

func TestTokenService_TokenUseIsEnforced(t *testing.T) {
	s := newTestTokenService()
	pair, err := s.IssueUserTokens(&domain.User{Id: "user-1"})
	require.NoError(t, err)

	_, err = s.ParseAccessToken(pair.RefreshToken)
	assertUnauthorized(t, err, "invalid token")

	_, err = s.ParseRefreshToken(pair.Token)
	assertUnauthorized(t, err, "invalid token")
}

func TestTokenService_AdminToken(t *testing.T) {
	s := newTestTokenService()

	pair, err := s.IssueAdminToken(&domain.Admin{Id: "admin-1"})
	require.NoError(t, err)
	assert.Empty(t, pair.RefreshToken)

	info, err := s.ParseAccessToken(pair.Token)
	require.NoError(t, err)
	assert.True(t, info.IsAdmin)
	assert.Equal(t, domain.UserIdentifier("admin-1"), info.Id)
}

func TestTokenService_Expired(t *testing.T) {
	s := newTestTokenService()
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	pair, err := s.IssueUserTokens(&domain.User{Id: "user-1"})
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = s.ParseAccessToken(pair.Token)
	assertUnauthorized(t, err, "token expired")

	_, err = s.ParseRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestTokenService_Tampered(t *testing.T) {
	s := newTestTokenService()
	other := NewTokenService(config.Auth{
		JwtSecret:              "another-secret-that-is-at-least-32-bytes",
		TokenExpiration:        time.Hour,
		RefreshTokenExpiration: time.Hour,
	})

	pair, err := other.IssueUserTokens(&domain.User{Id: "user-1"})
	require.NoError(t, err)

	_, err = s.ParseAccessToken(pair.Token)
	assertUnauthorized(t, err, "invalid token")

	_, err = s.ParseAccessToken("mock_token_1700000000000")
	assertUnauthorized(t, err, "invalid token")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Use: tokenUseAccess,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ParseAccessToken(none)
	assertUnauthorized(t, err, "invalid token")
}

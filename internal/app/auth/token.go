package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/manqiyou/manqiyou/internal/config"
	"github.com/manqiyou/manqiyou/internal/domain"
)

const tokenIssuer = "manqiyou"

type tokenUse string

const (
	tokenUseAccess  tokenUse = "access"
	tokenUseRefresh tokenUse = "refresh"
)

// Claims are the JWT claims of access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims

	Phone string   `json:"phone,omitempty"`
	Admin bool     `json:"admin,omitempty"`
	Use   tokenUse `json:"use"`
}

// TokenService issues and verifies HMAC signed JWTs.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(cfg config.Auth) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.JwtSecret),
		accessTTL:  cfg.TokenExpiration,
		refreshTTL: cfg.RefreshTokenExpiration,
		now:        time.Now,
	}
}

// IssueUserTokens returns an access token and a refresh token for the given user.
func (s *TokenService) IssueUserTokens(user *domain.User) (domain.TokenPair, error) {
	access, err := s.sign(string(user.Id), user.Phone, false, tokenUseAccess, s.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.sign(string(user.Id), "", false, tokenUseRefresh, s.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		Token:        access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// IssueAdminToken returns an access token with administrator rights. Admin sessions can not be refreshed.
func (s *TokenService) IssueAdminToken(admin *domain.Admin) (domain.TokenPair, error) {
	access, err := s.sign(string(admin.Id), "", true, tokenUseAccess, s.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		Token:     access,
		TokenType: domain.TokenTypeBearer,
		ExpiresIn: int64(s.accessTTL.Seconds()),
	}, nil
}

// ParseAccessToken verifies an access token and returns the session information it carries.
func (s *TokenService) ParseAccessToken(token string) (*domain.ContextUserInfo, error) {
	claims, err := s.parse(token, tokenUseAccess)
	if err != nil {
		return nil, err
	}

	return &domain.ContextUserInfo{
		Id:      domain.UserIdentifier(claims.Subject),
		Phone:   claims.Phone,
		IsAdmin: claims.Admin,
	}, nil
}

// ParseRefreshToken verifies a refresh token and returns the user it was issued for.
func (s *TokenService) ParseRefreshToken(token string) (domain.UserIdentifier, error) {
	claims, err := s.parse(token, tokenUseRefresh)
	if err != nil {
		return "", err
	}

	return domain.UserIdentifier(claims.Subject), nil
}

func (s *TokenService) sign(subject, phone string, admin bool, use tokenUse, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Phone: phone,
		Admin: admin,
		Use:   use,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", use, err)
	}

	return signed, nil
}

func (s *TokenService) parse(token string, use tokenUse) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.WrapError(http.StatusUnauthorized, "token expired", err)
		}
		return nil, domain.WrapError(http.StatusUnauthorized, "invalid token", err)
	}
	if claims.Use != use || claims.Subject == "" {
		return nil, domain.Unauthorized("invalid token")
	}

	return claims, nil
}

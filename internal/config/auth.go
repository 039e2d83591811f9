package config

import (
	"errors"
	"time"
)

// Auth contains the configuration of the phone-code and admin authentication.
type Auth struct {
	// JwtSecret is the HMAC secret used to sign access and refresh tokens. It must be at least 32 bytes long.
	JwtSecret string `yaml:"jwt_secret"`
	// TokenExpiration is the lifetime of an access token.
	TokenExpiration time.Duration `yaml:"token_expiration"`
	// RefreshTokenExpiration is the lifetime of a refresh token.
	RefreshTokenExpiration time.Duration `yaml:"refresh_token_expiration"`
	// BypassCode is a verification code that is accepted for every phone number.
	// It is meant for development environments only, an empty value disables it.
	BypassCode string `yaml:"bypass_code"`
	// ExposeCode returns the generated verification code in the send-code response.
	// It is meant for development environments only.
	ExposeCode bool `yaml:"expose_code"`
}

// Validate checks the auth configuration for obviously insecure values.
func (a *Auth) Validate() error {
	if len(a.JwtSecret) < 32 {
		return errors.New("jwt_secret must be at least 32 bytes long")
	}
	if a.TokenExpiration <= 0 || a.RefreshTokenExpiration <= 0 {
		return errors.New("token expiration values must be positive")
	}
	return nil
}

package handlers

import (
	"net/http"

	"github.com/manqiyou/manqiyou/internal/app/api/core/request"
	"github.com/manqiyou/manqiyou/internal/app/api/core/translator"
	"github.com/manqiyou/manqiyou/internal/domain"
)

type Scope string

const (
	ScopeAdmin Scope = "ADMIN" // Admin scope contains all other scopes
	ScopeUser  Scope = "USER"
)

type TokenAuthenticator interface {
	// Authenticate verifies a bearer token and returns the session information.
	Authenticate(token string) (*domain.ContextUserInfo, error)
}

type AuthenticationHandler struct {
	tr     *translator.Translator
	tokens TokenAuthenticator
}

func NewAuthenticationHandler(tr *translator.Translator, tokens TokenAuthenticator) AuthenticationHandler {
	return AuthenticationHandler{
		tr:     tr,
		tokens: tokens,
	}
}

// LoggedIn checks if a user is logged in. If scopes are given, they are validated as well.
func (h AuthenticationHandler) LoggedIn(scopes ...Scope) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, err := h.tokens.Authenticate(request.BearerToken(r))
			if err != nil {
				h.tr.Write(w, r, err)
				return
			}

			if !UserHasScopes(info, scopes...) {
				h.tr.Write(w, r, domain.Forbidden("insufficient permissions"))
				return
			}

			// Continue down the chain to handler etc
			next.ServeHTTP(w, r.WithContext(domain.SetUserInfo(r.Context(), info)))
		})
	}
}

// InfoOnly adds the user information of a valid bearer token to the request context.
// Requests without a token or with an invalid one continue as anonymous requests.
func (h AuthenticationHandler) InfoOnly() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := request.BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			info, err := h.tokens.Authenticate(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.SetUserInfo(r.Context(), info)))
		})
	}
}

func UserHasScopes(info *domain.ContextUserInfo, scopes ...Scope) bool {
	// No scopes give, so the check should succeed
	if len(scopes) == 0 {
		return true
	}

	// check if user has admin scope
	if info.IsAdmin {
		return true
	}

	// Check if admin scope is required
	for _, scope := range scopes {
		if scope == ScopeAdmin {
			return false
		}
	}

	// For all other scopes, a logged-in user is sufficient
	return info.Authenticated()
}

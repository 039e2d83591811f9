package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/manqiyou/manqiyou/internal/app/api/core/envelope"
	"github.com/manqiyou/manqiyou/internal/app/api/core/request"
	"github.com/manqiyou/manqiyou/internal/app/api/core/translator"
	"github.com/manqiyou/manqiyou/internal/app/api/v1/models"
	"github.com/manqiyou/manqiyou/internal/domain"
)

type AuthService interface {
	SendCode(ctx context.Context, phone string) (*domain.CodeIssue, error)
	PhoneLogin(ctx context.Context, phone, code string) (*domain.LoginResult, error)
	WechatLogin(ctx context.Context, code string) (*domain.LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	AdminLogin(ctx context.Context, username, password string) (*domain.AdminLoginResult, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
}

type AuthEndpoint struct {
	tr            *translator.Translator
	authenticator Authenticator
	validator     Validator
	auth          AuthService
}

func NewAuthEndpoint(
	tr *translator.Translator,
	authenticator Authenticator,
	validator Validator,
	auth AuthService,
) AuthEndpoint {
	return AuthEndpoint{
		tr:            tr,
		authenticator: authenticator,
		validator:     validator,
		auth:          auth,
	}
}

func (e AuthEndpoint) GetName() string {
	return "AuthEndpoint"
}

func (e AuthEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("POST /auth/send-code", e.handleSendCodePost())
	g.HandleFunc("POST /auth/login", e.handleLoginPost())
	g.HandleFunc("POST /auth/wechat", e.handleWechatLoginPost())
	g.HandleFunc("POST /auth/refresh", e.handleRefreshPost())
	g.With(e.authenticator.LoggedIn()).HandleFunc("GET /auth/me", e.handleMeGet())

	g.HandleFunc("POST /admin/login", e.handleAdminLoginPost())
}

// handleSendCodePost returns a handler function.
//
// @ID auth_handleSendCodePost
// @Tags Authentication
// @Summary Send a login verification code to a phone number.
// @Description No message is delivered, the code is only part of the response if the server exposes it.
// @Param request body models.SendCodeRequest true "The phone number."
// @Produce json
// @Success 200 {object} envelope.Response[domain.CodeIssue]
// @Failure 400 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /auth/send-code [post]
func (e AuthEndpoint) handleSendCodePost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.SendCodeRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		issue, err := e.auth.SendCode(r.Context(), req.Phone)
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage(issue.Message, issue), nil
	})
}

// handleLoginPost returns a handler function.
//
// @ID auth_handleLoginPost
// @Tags Authentication
// @Summary Log in with a phone number and a verification code.
// @Description Unknown phone numbers are registered on the fly.
// @Param request body models.LoginRequest true "The login credentials."
// @Produce json
// @Success 200 {object} envelope.Response[domain.LoginResult]
// @Failure 400 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /auth/login [post]
func (e AuthEndpoint) handleLoginPost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.LoginRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		result, err := e.auth.PhoneLogin(r.Context(), req.Phone, req.Code)
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("login successful", result), nil
	})
}

// handleWechatLoginPost returns a handler function.
//
// @ID auth_handleWechatLoginPost
// @Tags Authentication
// @Summary Log in with a WeChat authorization code.
// @Param request body models.WechatLoginRequest true "The authorization code."
// @Produce json
// @Success 200 {object} envelope.Response[domain.LoginResult]
// @Failure 400 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /auth/wechat [post]
func (e AuthEndpoint) handleWechatLoginPost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.WechatLoginRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		result, err := e.auth.WechatLogin(r.Context(), req.Code)
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("wechat login successful", result), nil
	})
}

// handleRefreshPost returns a handler function.
//
// @ID auth_handleRefreshPost
// @Tags Authentication
// @Summary Exchange a refresh token for a new token pair.
// @Param request body models.RefreshRequest true "The refresh token."
// @Produce json
// @Success 200 {object} envelope.Response[domain.TokenPair]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /auth/refresh [post]
func (e AuthEndpoint) handleRefreshPost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.RefreshRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		tokens, err := e.auth.RefreshToken(r.Context(), req.RefreshToken)
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(tokens), nil
	})
}

// handleMeGet returns a handler function.
//
// @ID auth_handleMeGet
// @Tags Authentication
// @Summary Get the user of the current access token.
// @Produce json
// @Success 200 {object} envelope.Response[domain.User]
// @Failure 401 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /auth/me [get]
// @Security BearerAuth
func (e AuthEndpoint) handleMeGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		user, err := e.auth.CurrentUser(r.Context())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(user), nil
	})
}

// handleAdminLoginPost returns a handler function.
//
// @ID auth_handleAdminLoginPost
// @Tags Authentication
// @Summary Log in as cms administrator.
// @Param request body models.AdminLoginRequest true "The administrator credentials."
// @Produce json
// @Success 200 {object} envelope.Response[domain.AdminLoginResult]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /admin/login [post]
func (e AuthEndpoint) handleAdminLoginPost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.AdminLoginRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		result, err := e.auth.AdminLogin(r.Context(), req.Username, req.Password)
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("login successful", result), nil
	})
}

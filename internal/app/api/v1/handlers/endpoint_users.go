package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/manqiyou/manqiyou/internal/app/api/core/envelope"
	"github.com/manqiyou/manqiyou/internal/app/api/core/request"
	"github.com/manqiyou/manqiyou/internal/app/api/core/respond"
	"github.com/manqiyou/manqiyou/internal/app/api/core/translator"
	"github.com/manqiyou/manqiyou/internal/app/api/v1/models"
	"github.com/manqiyou/manqiyou/internal/app/users"
	"github.com/manqiyou/manqiyou/internal/domain"
)

type UserService interface {
	GetCurrentUser(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*domain.User, error)
	GetMemberLevels(ctx context.Context) ([]domain.MemberLevel, error)
	GetPointsRecords(ctx context.Context, page domain.PageRequest) (domain.PageResult[domain.PointsRecord], error)
	RecordPoints(ctx context.Context, change users.PointsChange) (*domain.PointsRecord, error)
}

type UserEndpoint struct {
	tr            *translator.Translator
	authenticator Authenticator
	validator     Validator
	users         UserService
}

func NewUserEndpoint(
	tr *translator.Translator,
	authenticator Authenticator,
	validator Validator,
	userService UserService,
) UserEndpoint {
	return UserEndpoint{
		tr:            tr,
		authenticator: authenticator,
		validator:     validator,
		users:         userService,
	}
}

func (e UserEndpoint) GetName() string {
	return "UserEndpoint"
}

func (e UserEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("GET /member-levels", e.handleMemberLevelsGet())

	userGroup := g.With(e.authenticator.LoggedIn(ScopeUser))
	userGroup.HandleFunc("GET /users/me", e.handleMeGet())
	userGroup.HandleFunc("PUT /users/me", e.handleMeUpdatePut())
	userGroup.HandleFunc("GET /points", e.handlePointsGet())

	g.With(e.authenticator.LoggedIn(ScopeAdmin)).HandleFunc("POST /points", e.handlePointsPost())
}

// handleMeGet returns a handler function.
//
// @ID users_handleMeGet
// @Tags Users
// @Summary Get the profile of the current user.
// @Produce json
// @Success 200 {object} envelope.Response[domain.User]
// @Failure 401 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /users/me [get]
// @Security BearerAuth
func (e UserEndpoint) handleMeGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		user, err := e.users.GetCurrentUser(r.Context())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(user), nil
	})
}

// handleMeUpdatePut returns a handler function.
//
// @ID users_handleMeUpdatePut
// @Tags Users
// @Summary Update the nickname and avatar of the current user.
// @Param request body models.ProfileRequest true "The profile data."
// @Produce json
// @Success 200 {object} envelope.Response[domain.User]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /users/me [put]
// @Security BearerAuth
func (e UserEndpoint) handleMeUpdatePut() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.ProfileRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		user, err := e.users.UpdateProfile(r.Context(), req.ToProfileUpdate())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("profile updated", user), nil
	})
}

// handleMemberLevelsGet returns a handler function.
//
// @ID users_handleMemberLevelsGet
// @Tags Users
// @Summary Get all member levels, ordered by their points threshold.
// @Produce json
// @Success 200 {object} envelope.Response[[]domain.MemberLevel]
// @Failure 500 {object} envelope.Response[any]
// @Router /member-levels [get]
func (e UserEndpoint) handleMemberLevelsGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		levels, err := e.users.GetMemberLevels(r.Context())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(levels), nil
	})
}

// handlePointsGet returns a handler function.
//
// @ID users_handlePointsGet
// @Tags Users
// @Summary Get the points history of the current user.
// @Param page query int false "The page number, starting at 1." default(1)
// @Param size query int false "The page size (1-100)." default(10)
// @Produce json
// @Success 200 {object} envelope.Response[domain.PageResult[domain.PointsRecord]]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /points [get]
// @Security BearerAuth
func (e UserEndpoint) handlePointsGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		page, err := request.Page(r)
		if err != nil {
			return nil, err
		}

		result, err := e.users.GetPointsRecords(r.Context(), page)
		if err != nil {
			return nil, err
		}

		respond.TotalCount(w, result.Total)
		return envelope.SuccessData(result), nil
	})
}

// handlePointsPost returns a handler function.
//
// @ID users_handlePointsPost
// @Tags Users
// @Summary Book earned or spent points for a user.
// @Description Only administrators can book points. Spending more than the balance fails.
// @Param request body models.PointsRequest true "The points booking."
// @Produce json
// @Success 200 {object} envelope.Response[domain.PointsRecord]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /points [post]
// @Security BearerAuth
func (e UserEndpoint) handlePointsPost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.PointsRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		record, err := e.users.RecordPoints(r.Context(), req.ToPointsChange())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("points recorded", record), nil
	})
}

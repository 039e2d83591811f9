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
	"github.com/manqiyou/manqiyou/internal/domain"
)

type ContentService interface {
	FindContent(ctx context.Context, contentType domain.ContentType, page domain.PageRequest) (
		domain.PageResult[domain.Content],
		error,
	)
	GetContent(ctx context.Context, id domain.ContentIdentifier) (*domain.Content, error)
	CreateContent(ctx context.Context, item *domain.Content) (*domain.Content, error)
	UpdateContent(ctx context.Context, id domain.ContentIdentifier, item *domain.Content) (*domain.Content, error)
	DeleteContent(ctx context.Context, id domain.ContentIdentifier) error
}

type ContentEndpoint struct {
	tr            *translator.Translator
	authenticator Authenticator
	validator     Validator
	content       ContentService
}

func NewContentEndpoint(
	tr *translator.Translator,
	authenticator Authenticator,
	validator Validator,
	content ContentService,
) ContentEndpoint {
	return ContentEndpoint{
		tr:            tr,
		authenticator: authenticator,
		validator:     validator,
		content:       content,
	}
}

func (e ContentEndpoint) GetName() string {
	return "ContentEndpoint"
}

func (e ContentEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("GET /content", e.handleContentListGet())
	g.HandleFunc("GET /content/{id}", e.handleContentGet())

	adminGroup := g.With(e.authenticator.LoggedIn(ScopeAdmin))
	adminGroup.HandleFunc("POST /content", e.handleCreatePost())
	adminGroup.HandleFunc("PUT /content/{id}", e.handleUpdatePut())
	adminGroup.HandleFunc("DELETE /content/{id}", e.handleDelete())
}

// handleContentListGet returns a handler function.
//
// @ID content_handleContentListGet
// @Tags Content
// @Summary Get a page of active cms content.
// @Param type query string false "Only content of this type (banner, news, activity)."
// @Param page query int false "The page number, starting at 1." default(1)
// @Param size query int false "The page size (1-100)." default(10)
// @Produce json
// @Success 200 {object} envelope.Response[domain.PageResult[domain.Content]]
// @Failure 400 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /content [get]
func (e ContentEndpoint) handleContentListGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		page, err := request.Page(r)
		if err != nil {
			return nil, err
		}

		contentType := domain.ContentType(request.Query(r, "type"))
		result, err := e.content.FindContent(r.Context(), contentType, page)
		if err != nil {
			return nil, err
		}

		respond.TotalCount(w, result.Total)
		return envelope.SuccessData(result), nil
	})
}

// handleContentGet returns a handler function.
//
// @ID content_handleContentGet
// @Tags Content
// @Summary Get a single content item.
// @Param id path string true "The content identifier."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Content]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /content/{id} [get]
func (e ContentEndpoint) handleContentGet() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id := request.Path(r, "id")

		item, err := e.content.GetContent(r.Context(), domain.ContentIdentifier(id))
		if err != nil {
			return nil, err
		}

		return envelope.SuccessData(item), nil
	})
}

// handleCreatePost returns a handler function.
//
// @ID content_handleCreatePost
// @Tags Content
// @Summary Create a new content item.
// @Param request body models.ContentRequest true "The content data."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Content]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /content [post]
// @Security BearerAuth
func (e ContentEndpoint) handleCreatePost() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		var req models.ContentRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		item, err := e.content.CreateContent(r.Context(), req.ToDomain())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("content created", item), nil
	})
}

// handleUpdatePut returns a handler function.
//
// @ID content_handleUpdatePut
// @Tags Content
// @Summary Replace an existing content item.
// @Param id path string true "The content identifier."
// @Param request body models.ContentRequest true "The content data."
// @Produce json
// @Success 200 {object} envelope.Response[domain.Content]
// @Failure 400 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /content/{id} [put]
// @Security BearerAuth
func (e ContentEndpoint) handleUpdatePut() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id := request.Path(r, "id")

		var req models.ContentRequest
		if err := request.BodyJson(r, &req); err != nil {
			return nil, err
		}
		if err := e.validator.Struct(req); err != nil {
			return nil, err
		}

		item, err := e.content.UpdateContent(r.Context(), domain.ContentIdentifier(id), req.ToDomain())
		if err != nil {
			return nil, err
		}

		return envelope.SuccessMessage("content updated", item), nil
	})
}

// handleDelete returns a handler function.
//
// @ID content_handleDelete
// @Tags Content
// @Summary Delete a content item.
// @Param id path string true "The content identifier."
// @Produce json
// @Success 200 {object} envelope.Response[any]
// @Failure 401 {object} envelope.Response[any]
// @Failure 403 {object} envelope.Response[any]
// @Failure 404 {object} envelope.Response[any]
// @Failure 500 {object} envelope.Response[any]
// @Router /content/{id} [delete]
// @Security BearerAuth
func (e ContentEndpoint) handleDelete() http.HandlerFunc {
	return e.tr.Handler(func(w http.ResponseWriter, r *http.Request) (envelope.Enveloped, error) {
		id := request.Path(r, "id")

		if err := e.content.DeleteContent(r.Context(), domain.ContentIdentifier(id)); err != nil {
			return nil, err
		}

		return envelope.Success(), nil
	})
}

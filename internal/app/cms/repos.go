package cms

import (
	"context"

	"github.com/manqiyou/manqiyou/internal/domain"
)

type ContentDatabaseRepo interface {
	FindContent(ctx context.Context, contentType domain.ContentType, page domain.PageRequest) (
		[]domain.Content,
		int64,
		error,
	)
	GetContent(ctx context.Context, id domain.ContentIdentifier) (*domain.Content, error)
	SaveContent(
		ctx context.Context,
		id domain.ContentIdentifier,
		updateFunc func(c *domain.Content) (*domain.Content, error),
	) error
	DeleteContent(ctx context.Context, id domain.ContentIdentifier) error
}

type AdminDatabaseRepo interface {
	GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	SaveAdmin(ctx context.Context, id domain.AdminIdentifier, updateFunc func(a *domain.Admin) (*domain.Admin, error)) error
}

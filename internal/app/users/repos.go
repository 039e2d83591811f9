package users

import (
	"context"

	"github.com/manqiyou/manqiyou/internal/domain"
)

type UserDatabaseRepo interface {
	GetUser(ctx context.Context, id domain.UserIdentifier) (*domain.User, error)
	SaveUser(ctx context.Context, id domain.UserIdentifier, updateFunc func(u *domain.User) (*domain.User, error)) error
	GetAllMemberLevels(ctx context.Context) ([]domain.MemberLevel, error)
}

type PointsDatabaseRepo interface {
	FindPointsRecords(ctx context.Context, userId domain.UserIdentifier, page domain.PageRequest) (
		[]domain.PointsRecord,
		int64,
		error,
	)
	SavePointsRecord(
		ctx context.Context,
		userId domain.UserIdentifier,
		updateFunc func(u *domain.User, levels []domain.MemberLevel) (*domain.PointsRecord, error),
	) error
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
}

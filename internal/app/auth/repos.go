package auth

import (
	"context"

	"github.com/manqiyou/manqiyou/internal/domain"
)

// region dependencies

// CodeStore keeps the pending phone verification codes.
type CodeStore interface {
	// Put stores the code for the given phone number, replacing any previous code.
	Put(phone, code string)
	// Get returns the code of the given phone number. Expired codes are reported as missing.
	Get(phone string) (string, bool)
	// Delete removes the code of the given phone number.
	Delete(phone string)
}

type UserDatabaseRepo interface {
	GetUser(ctx context.Context, id domain.UserIdentifier) (*domain.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetUserByWechatOpenId(ctx context.Context, openId string) (*domain.User, error)
	SaveUser(ctx context.Context, id domain.UserIdentifier, updateFunc func(u *domain.User) (*domain.User, error)) error
}

type AdminDatabaseRepo interface {
	GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
}

// endregion dependencies

package domain

import (
	"context"
	"fmt"
)

type ctxKey string

const CtxUserInfo ctxKey = "userInfo"

const (
	CtxSystemAdminId = "_MQY_SYS_ADMIN_"
	CtxUnknownUserId = "_MQY_SYS_UNKNOWN_"
)

// ContextUserInfo describes the authenticated principal of a request.
type ContextUserInfo struct {
	Id      UserIdentifier
	Phone   string
	IsAdmin bool
}

func (u *ContextUserInfo) String() string {
	return fmt.Sprintf("%s|%t", u.Id, u.IsAdmin)
}

func (u *ContextUserInfo) UserId() string {
	return string(u.Id)
}

// Authenticated reports whether the info belongs to a logged-in user or admin.
func (u *ContextUserInfo) Authenticated() bool {
	return u.Id != "" && u.Id != CtxUnknownUserId
}

func DefaultContextUserInfo() *ContextUserInfo {
	return &ContextUserInfo{
		Id:      CtxUnknownUserId,
		IsAdmin: false,
	}
}

func SystemAdminContextUserInfo() *ContextUserInfo {
	return &ContextUserInfo{
		Id:      CtxSystemAdminId,
		IsAdmin: true,
	}
}

func SetUserInfo(ctx context.Context, info *ContextUserInfo) context.Context {
	ctx = context.WithValue(ctx, CtxUserInfo, info)
	return ctx
}

func GetUserInfo(ctx context.Context) *ContextUserInfo {
	rawInfo := ctx.Value(CtxUserInfo)
	if rawInfo == nil {
		return DefaultContextUserInfo()
	}

	if info, ok := rawInfo.(*ContextUserInfo); ok {
		return info
	}

	return DefaultContextUserInfo()
}

// ValidateUserAccessRights returns an error if the current context user is not logged in.
func ValidateUserAccessRights(ctx context.Context) error {
	if !GetUserInfo(ctx).Authenticated() {
		return Unauthorized("not logged in")
	}
	return nil
}

// ValidateAdminAccessRights returns an error if the current context user is not an admin.
func ValidateAdminAccessRights(ctx context.Context) error {
	sessionUser := GetUserInfo(ctx)
	if !sessionUser.Authenticated() {
		return Unauthorized("not logged in")
	}
	if !sessionUser.IsAdmin {
		return Forbidden("insufficient permissions")
	}
	return nil
}

package models

import (
	"github.com/manqiyou/manqiyou/internal/app/users"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// ProfileRequest updates the profile of the current user. Empty fields keep their current value.
type ProfileRequest struct {
	Nickname string `json:"nickname" validate:"omitempty,max=64"`
	Avatar   string `json:"avatar" validate:"omitempty,max=512"`
}

func (p ProfileRequest) ToProfileUpdate() users.ProfileUpdate {
	return users.ProfileUpdate{
		Nickname: p.Nickname,
		Avatar:   p.Avatar,
	}
}

// PointsRequest books points for a user.
type PointsRequest struct {
	UserId      string `json:"userId" validate:"required"`
	Amount      int    `json:"amount" validate:"gt=0"`
	Type        string `json:"type" validate:"required,oneof=earn spend"`
	Source      string `json:"source" validate:"omitempty,max=64"`
	Description string `json:"description" validate:"omitempty,max=256"`
}

func (p PointsRequest) ToPointsChange() users.PointsChange {
	return users.PointsChange{
		UserId:      domain.UserIdentifier(p.UserId),
		Amount:      p.Amount,
		Type:        domain.PointsType(p.Type),
		Source:      p.Source,
		Description: p.Description,
	}
}

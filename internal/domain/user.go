package domain

import (
	"time"
)

type UserIdentifier string
type MemberLevelIdentifier string

const DefaultAvatar = "/images/default-avatar.png"

// User is a registered site visitor. Users are created on their first login.
type User struct {
	BaseModel

	Id            UserIdentifier        `gorm:"primaryKey;size:36" json:"id"`
	Phone         string                `gorm:"size:20;index" json:"phone,omitempty"`
	Nickname      string                `gorm:"size:64" json:"nickname"`
	Avatar        string                `gorm:"size:512" json:"avatar"`
	WechatOpenId  string                `gorm:"size:64;index" json:"-"`
	MemberLevelId MemberLevelIdentifier `gorm:"size:36" json:"memberLevelId,omitempty"`
	Points        int                   `json:"points"`
	LastLoginAt   *time.Time            `json:"lastLoginAt,omitempty"`
}

// MemberLevel is a loyalty tier that is reached by collecting points.
type MemberLevel struct {
	Id        MemberLevelIdentifier `gorm:"primaryKey;size:36" json:"id"`
	Name      string                `gorm:"size:32" json:"name"`
	MinPoints int                   `json:"minPoints"`
	Benefits  []string              `gorm:"serializer:json" json:"benefits"`
}

// LevelForPoints returns the highest level whose threshold is reached by the given points.
// The levels may be passed in any order, nil is returned if no level matches.
func LevelForPoints(levels []MemberLevel, points int) *MemberLevel {
	var best *MemberLevel
	for i := range levels {
		if levels[i].MinPoints > points {
			continue
		}
		if best == nil || levels[i].MinPoints > best.MinPoints {
			best = &levels[i]
		}
	}
	return best
}

package domain

import "time"

type PointsRecordIdentifier string

type PointsType string

const (
	PointsTypeEarn  PointsType = "earn"
	PointsTypeSpend PointsType = "spend"
)

// PointsRecord is a single change of a users points balance.
type PointsRecord struct {
	Id          PointsRecordIdentifier `gorm:"primaryKey;size:36" json:"id"`
	UserId      UserIdentifier         `gorm:"size:36;index" json:"userId"`
	Amount      int                    `json:"amount"`
	Type        PointsType             `gorm:"size:16" json:"type"`
	Source      string                 `gorm:"size:64" json:"source"`
	Description string                 `gorm:"size:256" json:"description"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// Delta returns the signed balance change of the record.
func (p *PointsRecord) Delta() int {
	if p.Type == PointsTypeSpend {
		return -p.Amount
	}
	return p.Amount
}

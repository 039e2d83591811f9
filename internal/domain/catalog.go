package domain

import (
	"time"

	"gorm.io/gorm"
)

type RouteIdentifier uint64
type CategoryIdentifier uint64

const (
	RouteStatusInactive = 0
	RouteStatusActive   = 1
)

const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
)

// Route is a bookable cycling tour.
type Route struct {
	Id              RouteIdentifier    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string             `gorm:"size:128;not null" json:"name"`
	NameEn          string             `gorm:"size:128" json:"nameEn"`
	Summary         string             `gorm:"size:512" json:"summary"`
	Description     string             `json:"description"`
	CoverImage      string             `gorm:"size:512" json:"coverImage"`
	Images          []string           `gorm:"serializer:json" json:"images"`
	Highlights      []string           `gorm:"serializer:json" json:"highlights"`
	HighlightsEn    []string           `gorm:"serializer:json" json:"highlightsEn"`
	CategoryId      CategoryIdentifier `gorm:"index" json:"categoryId"`
	Difficulty      string             `gorm:"size:32;index" json:"difficulty"`
	Duration        int                `json:"duration"` // days
	Distance        float64            `json:"distance"` // kilometers
	Price           float64            `json:"price"`
	MaxParticipants int                `json:"maxParticipants"`
	Status          int                `gorm:"index" json:"status"`
	Featured        bool               `json:"featured"`
	SortOrder       int                `json:"sortOrder"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`
}

// IsActive reports whether the route is visible and bookable.
func (r *Route) IsActive() bool {
	return r.Status == RouteStatusActive
}

// CanHost reports whether the route accepts a booking of the given size.
func (r *Route) CanHost(participants int) bool {
	if r.MaxParticipants <= 0 {
		return true // no limit
	}
	return participants <= r.MaxParticipants
}

// RouteFilter contains the optional equality filters of a route search.
// Zero values are ignored.
type RouteFilter struct {
	CategoryId CategoryIdentifier
	Difficulty string
}

// Category groups routes.
type Category struct {
	Id        CategoryIdentifier `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string             `gorm:"size:64;not null" json:"name"`
	NameEn    string             `gorm:"size:64" json:"nameEn"`
	Icon      string             `gorm:"size:256" json:"icon"`
	SortOrder int                `json:"sortOrder"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

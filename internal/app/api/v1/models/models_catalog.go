package models

import (
	"github.com/manqiyou/manqiyou/internal/domain"
)

// RouteRequest creates or replaces a touring route.
type RouteRequest struct {
	Name            string   `json:"name" validate:"required,max=128"`
	NameEn          string   `json:"nameEn" validate:"omitempty,max=128"`
	Summary         string   `json:"summary" validate:"omitempty,max=512"`
	Description     string   `json:"description"`
	CoverImage      string   `json:"coverImage" validate:"omitempty,max=512"`
	Images          []string `json:"images"`
	Highlights      []string `json:"highlights"`
	HighlightsEn    []string `json:"highlightsEn"`
	CategoryId      uint64   `json:"categoryId"`
	Difficulty      string   `json:"difficulty" validate:"required,difficulty"`
	Duration        int      `json:"duration" validate:"gte=1"`      // days
	Distance        float64  `json:"distance" validate:"gte=0"`      // kilometers
	Price           float64  `json:"price" validate:"gte=0"`         // per participant
	MaxParticipants int      `json:"maxParticipants" validate:"gte=0"` // 0 means unlimited
	Status          int      `json:"status" validate:"oneof=0 1"`
	Featured        bool     `json:"featured"`
	SortOrder       int      `json:"sortOrder"`
}

func (r RouteRequest) ToDomain() *domain.Route {
	return &domain.Route{
		Name:            r.Name,
		NameEn:          r.NameEn,
		Summary:         r.Summary,
		Description:     r.Description,
		CoverImage:      r.CoverImage,
		Images:          r.Images,
		Highlights:      r.Highlights,
		HighlightsEn:    r.HighlightsEn,
		CategoryId:      domain.CategoryIdentifier(r.CategoryId),
		Difficulty:      r.Difficulty,
		Duration:        r.Duration,
		Distance:        r.Distance,
		Price:           r.Price,
		MaxParticipants: r.MaxParticipants,
		Status:          r.Status,
		Featured:        r.Featured,
		SortOrder:       r.SortOrder,
	}
}

// CategoryRequest creates a route category.
type CategoryRequest struct {
	Name      string `json:"name" validate:"required,max=64"`
	NameEn    string `json:"nameEn" validate:"omitempty,max=64"`
	Icon      string `json:"icon" validate:"omitempty,max=256"`
	SortOrder int    `json:"sortOrder"`
}

func (c CategoryRequest) ToDomain() *domain.Category {
	return &domain.Category{
		Name:      c.Name,
		NameEn:    c.NameEn,
		Icon:      c.Icon,
		SortOrder: c.SortOrder,
	}
}

// ContentRequest creates or replaces a cms content item.
type ContentRequest struct {
	Type      string   `json:"type" validate:"required,contenttype"`
	Title     string   `json:"title" validate:"required,max=256"`
	TitleEn   string   `json:"titleEn" validate:"omitempty,max=256"`
	Content   string   `json:"content"`
	ContentEn string   `json:"contentEn"`
	Images    []string `json:"images"`
	IsActive  bool     `json:"isActive"`
	SortOrder int      `json:"sortOrder"`
}

func (c ContentRequest) ToDomain() *domain.Content {
	return &domain.Content{
		Type:      domain.ContentType(c.Type),
		Title:     c.Title,
		TitleEn:   c.TitleEn,
		Content:   c.Content,
		ContentEn: c.ContentEn,
		Images:    c.Images,
		IsActive:  c.IsActive,
		SortOrder: c.SortOrder,
	}
}

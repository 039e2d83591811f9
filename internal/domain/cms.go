package domain

import (
	"golang.org/x/crypto/bcrypt"
)

type ContentIdentifier string
type AdminIdentifier string

type ContentType string

const (
	ContentTypeBanner   ContentType = "banner"
	ContentTypeNews     ContentType = "news"
	ContentTypeActivity ContentType = "activity"
)

// Valid reports whether the content type is one of the known types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeBanner, ContentTypeNews, ContentTypeActivity:
		return true
	default:
		return false
	}
}

// Content is a cms managed piece of content (banner, news article or activity).
type Content struct {
	SoftDeleteModel

	Id        ContentIdentifier `gorm:"primaryKey;size:36" json:"id"`
	Type      ContentType       `gorm:"size:32;index" json:"type"`
	Title     string            `gorm:"size:256" json:"title"`
	TitleEn   string            `gorm:"size:256" json:"titleEn"`
	Content   string            `json:"content"`
	ContentEn string            `json:"contentEn"`
	Images    []string          `gorm:"serializer:json" json:"images"`
	IsActive  bool              `json:"isActive"`
	SortOrder int               `json:"sortOrder"`
}

type AdminRole string

const (
	AdminRoleAdmin  AdminRole = "admin"
	AdminRoleEditor AdminRole = "editor"
)

// Admin is a cms back office account.
type Admin struct {
	BaseModel

	Id       AdminIdentifier `gorm:"primaryKey;size:36" json:"id"`
	Username string          `gorm:"size:64;uniqueIndex" json:"username"`
	Password PrivateString   `gorm:"size:128" json:"-"`
	Name     string          `gorm:"size:64" json:"name"`
	Role     AdminRole       `gorm:"size:16" json:"role"`
}

// CheckPassword compares the plaintext password with the stored bcrypt hash.
func (a *Admin) CheckPassword(password string) error {
	if a.Password == "" {
		return Unauthorized("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return Unauthorized("invalid username or password")
	}
	return nil
}

// HashPassword replaces a plaintext password with its bcrypt hash. Hashed passwords are left as is.
func (a *Admin) HashPassword() error {
	if a.Password == "" {
		return nil
	}
	if _, err := bcrypt.Cost([]byte(a.Password)); err == nil {
		return nil // already hashed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = PrivateString(hash)
	return nil
}

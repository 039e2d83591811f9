package cms

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/manqiyou/manqiyou/internal/domain"
)

// Manager serves the site content (banners, news and activities) and manages the cms administrators.
type Manager struct {
	content ContentDatabaseRepo
	admins  AdminDatabaseRepo
}

func NewContentManager(content ContentDatabaseRepo, admins AdminDatabaseRepo) (*Manager, error) {
	if content == nil || admins == nil {
		return nil, errors.New("missing cms repository")
	}

	return &Manager{
		content: content,
		admins:  admins,
	}, nil
}

func (m Manager) FindContent(ctx context.Context, contentType domain.ContentType, page domain.PageRequest) (
	domain.PageResult[domain.Content],
	error,
) {
	if contentType != "" && !contentType.Valid() {
		return domain.PageResult[domain.Content]{}, domain.IllegalArgument("unknown content type %q", contentType)
	}
	if err := page.Validate(); err != nil {
		return domain.PageResult[domain.Content]{}, err
	}

	items, total, err := m.content.FindContent(ctx, contentType, page)
	if err != nil {
		return domain.PageResult[domain.Content]{}, fmt.Errorf("unable to load content: %w", err)
	}

	return domain.NewPageResult(items, total, page), nil
}

// GetContent returns an active content item. Inactive items are only visible to administrators.
func (m Manager) GetContent(ctx context.Context, id domain.ContentIdentifier) (*domain.Content, error) {
	item, err := m.content.GetContent(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("content not found")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load content %s: %w", id, err)
	}

	if !item.IsActive && !domain.GetUserInfo(ctx).IsAdmin {
		return nil, domain.NotFound("content not found")
	}

	return item, nil
}

func (m Manager) CreateContent(ctx context.Context, item *domain.Content) (*domain.Content, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	id := domain.ContentIdentifier(uuid.NewString())
	created, err := m.saveContent(ctx, id, item)
	if err != nil {
		return nil, fmt.Errorf("creation failure: %w", err)
	}

	return created, nil
}

func (m Manager) UpdateContent(ctx context.Context, id domain.ContentIdentifier, item *domain.Content) (
	*domain.Content,
	error,
) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	if _, err := m.content.GetContent(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("content not found")
		}
		return nil, fmt.Errorf("unable to load content %s: %w", id, err)
	}

	updated, err := m.saveContent(ctx, id, item)
	if err != nil {
		return nil, fmt.Errorf("update failure: %w", err)
	}

	return updated, nil
}

func (m Manager) saveContent(ctx context.Context, id domain.ContentIdentifier, item *domain.Content) (
	*domain.Content,
	error,
) {
	var saved *domain.Content
	err := m.content.SaveContent(ctx, id, func(c *domain.Content) (*domain.Content, error) {
		c.Type = item.Type
		c.Title = item.Title
		c.TitleEn = item.TitleEn
		c.Content = item.Content
		c.ContentEn = item.ContentEn
		c.Images = item.Images
		c.IsActive = item.IsActive
		c.SortOrder = item.SortOrder
		saved = c
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (m Manager) DeleteContent(ctx context.Context, id domain.ContentIdentifier) error {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return err
	}

	err := m.content.DeleteContent(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("content not found")
	}
	if err != nil {
		return fmt.Errorf("deletion failure: %w", err)
	}

	return nil
}

// EnsureAdmin creates an administrator with the given credentials if the username is not taken yet.
func (m Manager) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return false, err
	}
	if username == "" || password == "" {
		return false, errors.New("missing admin username or password")
	}

	_, err := m.admins.GetAdminByUsername(ctx, username)
	if err == nil {
		return false, nil // admin already exists
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("unable to load admin %s: %w", username, err)
	}

	id := domain.AdminIdentifier(uuid.NewString())
	err = m.admins.SaveAdmin(ctx, id, func(a *domain.Admin) (*domain.Admin, error) {
		a.Username = username
		a.Password = domain.PrivateString(password)
		a.Name = "Administrator"
		a.Role = domain.AdminRoleAdmin
		return a, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to save admin %s: %w", username, err)
	}

	return true, nil
}

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manqiyou/manqiyou/internal/app"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// ProfileUpdate holds the user editable profile fields. Empty values keep the stored value.
type ProfileUpdate struct {
	Nickname string
	Avatar   string
}

// PointsChange describes an administrative points adjustment.
type PointsChange struct {
	UserId      domain.UserIdentifier
	Amount      int
	Type        domain.PointsType
	Source      string
	Description string
}

// Manager serves user profiles, member levels and the points ledger.
type Manager struct {
	bus EventBus

	users  UserDatabaseRepo
	points PointsDatabaseRepo
}

func NewUserManager(bus EventBus, users UserDatabaseRepo, points PointsDatabaseRepo) (*Manager, error) {
	if users == nil || points == nil {
		return nil, errors.New("missing user repository")
	}

	m := &Manager{
		bus: bus,

		users:  users,
		points: points,
	}
	return m, nil
}

// GetCurrentUser returns the user of the current session.
func (m Manager) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	if err := domain.ValidateUserAccessRights(ctx); err != nil {
		return nil, err
	}

	id := domain.GetUserInfo(ctx).Id
	user, err := m.users.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load user %s: %w", id, err)
	}

	return user, nil
}

// UpdateProfile changes the nickname and avatar of the current user.
func (m Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error) {
	if _, err := m.GetCurrentUser(ctx); err != nil {
		return nil, err
	}

	id := domain.GetUserInfo(ctx).Id
	var updated *domain.User
	err := m.users.SaveUser(ctx, id, func(u *domain.User) (*domain.User, error) {
		if nickname := strings.TrimSpace(update.Nickname); nickname != "" {
			u.Nickname = nickname
		}
		if avatar := strings.TrimSpace(update.Avatar); avatar != "" {
			u.Avatar = avatar
		}
		updated = u
		return u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update failure: %w", err)
	}

	return updated, nil
}

// GetMemberLevels returns all member levels ordered by their points threshold.
func (m Manager) GetMemberLevels(ctx context.Context) ([]domain.MemberLevel, error) {
	levels, err := m.users.GetAllMemberLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load member levels: %w", err)
	}

	return levels, nil
}

// GetPointsRecords returns the points history of the current user, newest first.
func (m Manager) GetPointsRecords(ctx context.Context, page domain.PageRequest) (
	domain.PageResult[domain.PointsRecord],
	error,
) {
	if err := domain.ValidateUserAccessRights(ctx); err != nil {
		return domain.PageResult[domain.PointsRecord]{}, err
	}
	if err := page.Validate(); err != nil {
		return domain.PageResult[domain.PointsRecord]{}, err
	}

	records, total, err := m.points.FindPointsRecords(ctx, domain.GetUserInfo(ctx).Id, page)
	if err != nil {
		return domain.PageResult[domain.PointsRecord]{}, fmt.Errorf("unable to load points records: %w", err)
	}

	return domain.NewPageResult(records, total, page), nil
}

// RecordPoints books an earn or spend record and adjusts the balance and member level of the user.
func (m Manager) RecordPoints(ctx context.Context, change PointsChange) (*domain.PointsRecord, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}
	if change.Amount <= 0 {
		return nil, domain.IllegalArgument("amount must be greater than zero, got %d", change.Amount)
	}
	if change.Type != domain.PointsTypeEarn && change.Type != domain.PointsTypeSpend {
		return nil, domain.IllegalArgument("unknown points type %q", change.Type)
	}

	var record *domain.PointsRecord
	err := m.points.SavePointsRecord(ctx, change.UserId,
		func(u *domain.User, levels []domain.MemberLevel) (*domain.PointsRecord, error) {
			record = &domain.PointsRecord{
				Amount:      change.Amount,
				Type:        change.Type,
				Source:      change.Source,
				Description: change.Description,
			}

			balance := u.Points + record.Delta()
			if balance < 0 {
				return nil, domain.BadRequest("insufficient points")
			}

			u.Points = balance
			if level := domain.LevelForPoints(levels, balance); level != nil {
				u.MemberLevelId = level.Id
			}
			return record, nil
		})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record points: %w", err)
	}

	if m.bus != nil {
		m.bus.Publish(app.TopicPointsChanged, *record)
	}

	return record, nil
}

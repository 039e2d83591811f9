package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/google/uuid"

	"github.com/manqiyou/manqiyou/internal/config"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// SchemaVersion describes the current database schema version. It must be incremented if a manual migration is needed.
var SchemaVersion uint64 = 1

// SysStat stores the current database schema version and the timestamp when it was applied.
type SysStat struct {
	MigratedAt    time.Time `gorm:"column:migrated_at"`
	SchemaVersion uint64    `gorm:"primaryKey,column:schema_version"`
}

// defaultMemberLevels are written to an empty member level table.
var defaultMemberLevels = []domain.MemberLevel{
	{Name: "Rider", MinPoints: 0, Benefits: []string{"member newsletter"}},
	{Name: "Explorer", MinPoints: 1000, Benefits: []string{"member newsletter", "5% route discount"}},
	{Name: "Pathfinder", MinPoints: 5000, Benefits: []string{"member newsletter", "10% route discount", "priority booking"}},
	{Name: "Legend", MinPoints: 20000, Benefits: []string{"member newsletter", "15% route discount", "priority booking", "free bike rental"}},
}

// GormLogger is a custom logger for Gorm, making it use slog
type GormLogger struct {
	SlowThreshold           time.Duration
	SourceField             string
	IgnoreErrRecordNotFound bool
	Debug                   bool
	Silent                  bool

	prefix string
}

func NewLogger(slowThreshold time.Duration, debug bool) *GormLogger {
	return &GormLogger{
		SlowThreshold:           slowThreshold,
		Debug:                   debug,
		IgnoreErrRecordNotFound: true,
		Silent:                  false,
		SourceField:             "src",
		prefix:                  "GORM-SQL: ",
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.Silent = level == logger.Silent
	return l
}

func (l *GormLogger) Info(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.InfoContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Warn(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.WarnContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Error(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.ErrorContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	attrs := []any{
		"rows", rows,
		"duration", elapsed,
	}

	if l.SourceField != "" {
		attrs = append(attrs, l.SourceField, utils.FileWithLineNum())
	}

	if err != nil && !(errors.Is(err, gorm.ErrRecordNotFound) && l.IgnoreErrRecordNotFound) {
		attrs = append(attrs, "error", err)
		slog.ErrorContext(ctx, l.prefix+sql, attrs...)
		return
	}

	if l.SlowThreshold != 0 && elapsed > l.SlowThreshold {
		slog.WarnContext(ctx, l.prefix+sql, attrs...)
		return
	}

	if l.Debug {
		slog.DebugContext(ctx, l.prefix+sql, attrs...)
	}
}

// NewDatabase creates a new database connection and returns a Gorm database instance.
func NewDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormDb *gorm.DB
	var err error

	gormCfg := &gorm.Config{
		Logger: NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
	}

	switch cfg.Type {
	case config.DatabaseMySQL:
		gormDb, err = gorm.Open(mysql.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w", err)
		}

		sqlDB, _ := gormDb.DB()
		sqlDB.SetConnMaxLifetime(time.Minute * 5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(10)
		err = sqlDB.Ping() // This DOES open a connection if necessary. This makes sure the database is accessible
		if err != nil {
			return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
		}
	case config.DatabaseMsSQL:
		gormDb, err = gorm.Open(sqlserver.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlserver database: %w", err)
		}
	case config.DatabasePostgres:
		gormDb, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open Postgres database: %w", err)
		}
	case config.DatabaseSQLite:
		if dir := filepath.Dir(cfg.DSN); dir != "." && dir != "" && cfg.DSN != ":memory:" {
			if _, err = os.Stat(dir); os.IsNotExist(err) {
				if err = os.MkdirAll(dir, 0700); err != nil {
					return nil, fmt.Errorf("failed to create database base directory: %w", err)
				}
			}
		}
		gormCfg.DisableForeignKeyConstraintWhenMigrating = true
		gormDb, err = gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, _ := gormDb.DB()
		sqlDB.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	return gormDb, nil
}

// SqlRepo is a SQL database repository implementation.
// Currently, it supports MySQL, SQLite, Microsoft SQL and Postgresql database systems.
type SqlRepo struct {
	db *gorm.DB
}

// NewSqlRepository creates a new SqlRepo instance.
func NewSqlRepository(db *gorm.DB) (*SqlRepo, error) {
	repo := &SqlRepo{
		db: db,
	}

	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

func (r *SqlRepo) migrate() error {
	models := []struct {
		name  string
		model any
	}{
		{"sys-stat", &SysStat{}},
		{"category", &domain.Category{}},
		{"route", &domain.Route{}},
		{"content", &domain.Content{}},
		{"admin", &domain.Admin{}},
		{"user", &domain.User{}},
		{"member level", &domain.MemberLevel{}},
		{"points record", &domain.PointsRecord{}},
		{"order", &domain.Order{}},
	}
	for _, m := range models {
		if err := r.db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migration of %s failed: %w", m.name, err)
		}
		slog.Debug("running migration: "+m.name, "result", "ok")
	}

	existingSysStat := SysStat{}
	r.db.Where("schema_version = ?", SchemaVersion).Limit(1).Find(&existingSysStat)
	if existingSysStat.SchemaVersion == 0 {
		sysStat := SysStat{
			MigratedAt:    time.Now(),
			SchemaVersion: SchemaVersion,
		}
		if err := r.db.Create(&sysStat).Error; err != nil {
			return fmt.Errorf("failed to write sysstat entry for schema version %d: %w", SchemaVersion, err)
		}
		slog.Debug("sys-stat entry written", "schema_version", SchemaVersion)
	}

	return r.seedMemberLevels()
}

func (r *SqlRepo) seedMemberLevels() error {
	var count int64
	if err := r.db.Model(&domain.MemberLevel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count member levels: %w", err)
	}
	if count > 0 {
		return nil
	}

	levels := make([]domain.MemberLevel, len(defaultMemberLevels))
	for i, level := range defaultMemberLevels {
		level.Id = domain.MemberLevelIdentifier(uuid.NewString())
		levels[i] = level
	}
	if err := r.db.Create(&levels).Error; err != nil {
		return fmt.Errorf("failed to seed member levels: %w", err)
	}
	slog.Debug("default member levels written", "count", len(levels))

	return nil
}

func mapNotFound(err error) error {
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func paginate(page domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Size)
	}
}

// region routes

// GetFeaturedRoutes returns up to limit active, featured routes ordered by their sort order.
func (r *SqlRepo) GetFeaturedRoutes(ctx context.Context, limit int) ([]domain.Route, error) {
	var routes []domain.Route

	err := r.db.WithContext(ctx).
		Where("status = ? AND featured = ?", domain.RouteStatusActive, true).
		Order("sort_order asc, id asc").
		Limit(limit).
		Find(&routes).Error
	if err != nil {
		return nil, err
	}

	return routes, nil
}

// FindRoutes returns one page of active routes that match the given filter and the total number of matches.
func (r *SqlRepo) FindRoutes(ctx context.Context, filter domain.RouteFilter, page domain.PageRequest) (
	[]domain.Route,
	int64,
	error,
) {
	query := r.db.WithContext(ctx).Model(&domain.Route{}).Where("status = ?", domain.RouteStatusActive)
	if filter.CategoryId != 0 {
		query = query.Where("category_id = ?", filter.CategoryId)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var routes []domain.Route
	err := query.Scopes(paginate(page)).Order("sort_order asc, id asc").Find(&routes).Error
	if err != nil {
		return nil, 0, err
	}

	return routes, total, nil
}

// GetRoute returns the route with the given id, regardless of its status.
// If no route is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetRoute(ctx context.Context, id domain.RouteIdentifier) (*domain.Route, error) {
	var route domain.Route

	err := r.db.WithContext(ctx).First(&route, uint64(id)).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &route, nil
}

// CreateRoute inserts a new route, the generated id is written back to the given route.
func (r *SqlRepo) CreateRoute(ctx context.Context, route *domain.Route) error {
	route.Id = 0
	return r.db.WithContext(ctx).Create(route).Error
}

// SaveRoute updates the route with the given id.
// If no route is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) SaveRoute(
	ctx context.Context,
	id domain.RouteIdentifier,
	updateFunc func(rt *domain.Route) (*domain.Route, error),
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var route domain.Route
		if err := tx.First(&route, uint64(id)).Error; err != nil {
			return mapNotFound(err)
		}

		updated, err := updateFunc(&route)
		if err != nil {
			return err
		}
		updated.Id = id

		return tx.Save(updated).Error
	})
}

// DeleteRoute soft deletes the route with the given id.
func (r *SqlRepo) DeleteRoute(ctx context.Context, id domain.RouteIdentifier) error {
	res := r.db.WithContext(ctx).Delete(&domain.Route{}, uint64(id))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// endregion routes

// region categories

// GetAllCategories returns all categories ordered by their sort order.
func (r *SqlRepo) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category

	err := r.db.WithContext(ctx).Order("sort_order asc, id asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// GetCategory returns the category with the given id.
// If no category is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetCategory(ctx context.Context, id domain.CategoryIdentifier) (*domain.Category, error) {
	var category domain.Category

	err := r.db.WithContext(ctx).First(&category, uint64(id)).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &category, nil
}

// CreateCategory inserts a new category.
func (r *SqlRepo) CreateCategory(ctx context.Context, category *domain.Category) error {
	category.Id = 0
	return r.db.WithContext(ctx).Create(category).Error
}

// endregion categories

// region content

// FindContent returns one page of active content items, optionally restricted to one type.
func (r *SqlRepo) FindContent(ctx context.Context, contentType domain.ContentType, page domain.PageRequest) (
	[]domain.Content,
	int64,
	error,
) {
	query := r.db.WithContext(ctx).Model(&domain.Content{}).Where("is_active = ?", true)
	if contentType != "" {
		query = query.Where("type = ?", contentType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Content
	err := query.Scopes(paginate(page)).Order("sort_order asc, created_at desc").Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetContent returns the content item with the given id.
// If no item is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetContent(ctx context.Context, id domain.ContentIdentifier) (*domain.Content, error) {
	var item domain.Content

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &item, nil
}

// SaveContent updates the content item with the given id.
// If no item is found, a new one is created.
func (r *SqlRepo) SaveContent(
	ctx context.Context,
	id domain.ContentIdentifier,
	updateFunc func(c *domain.Content) (*domain.Content, error),
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item domain.Content

		// defaults will be applied to newly created records
		defaults := domain.Content{
			Id:       id,
			IsActive: true,
		}
		if err := tx.Where("id = ?", id).Attrs(defaults).FirstOrCreate(&item).Error; err != nil {
			return err // return any error will roll back
		}

		updated, err := updateFunc(&item)
		if err != nil {
			return err
		}
		updated.Id = id

		// return nil will commit the whole transaction
		return tx.Save(updated).Error
	})
	if err != nil {
		return err
	}

	return nil
}

// DeleteContent soft deletes the content item with the given id.
func (r *SqlRepo) DeleteContent(ctx context.Context, id domain.ContentIdentifier) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Content{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// endregion content

// region admins

// GetAdminByUsername returns the administrator with the given username.
// If no administrator is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var admin domain.Admin

	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &admin, nil
}

// SaveAdmin updates the administrator with the given id.
// If no administrator is found, a new one is created.
func (r *SqlRepo) SaveAdmin(
	ctx context.Context,
	id domain.AdminIdentifier,
	updateFunc func(a *domain.Admin) (*domain.Admin, error),
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin domain.Admin
		if err := tx.Where("id = ?", id).Attrs(domain.Admin{Id: id}).FirstOrCreate(&admin).Error; err != nil {
			return err
		}

		updated, err := updateFunc(&admin)
		if err != nil {
			return err
		}
		updated.Id = id

		if err := updated.HashPassword(); err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		return tx.Save(updated).Error
	})
}

// endregion admins

// region users

// GetUser returns the user with the given id.
// If no user is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetUser(ctx context.Context, id domain.UserIdentifier) (*domain.User, error) {
	var user domain.User

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &user, nil
}

// GetUserByPhone returns the user with the given phone number.
// If no user is found, an error domain.ErrNotFound is returned.
// If multiple users are found, an error domain.ErrNotUnique is returned.
func (r *SqlRepo) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getUniqueUser(ctx, "phone = ?", phone)
}

// GetUserByWechatOpenId returns the user that is bound to the given WeChat open id.
func (r *SqlRepo) GetUserByWechatOpenId(ctx context.Context, openId string) (*domain.User, error) {
	return r.getUniqueUser(ctx, "wechat_open_id = ?", openId)
}

func (r *SqlRepo) getUniqueUser(ctx context.Context, query string, value string) (*domain.User, error) {
	var users []domain.User

	err := r.db.WithContext(ctx).Where(query, value).Limit(2).Find(&users).Error
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, domain.ErrNotFound
	}

	if len(users) > 1 {
		return nil, fmt.Errorf("found multiple users for %s: %w", value, domain.ErrNotUnique)
	}

	return &users[0], nil
}

// SaveUser updates the user with the given id.
// If no user is found, a new user is created.
func (r *SqlRepo) SaveUser(
	ctx context.Context,
	id domain.UserIdentifier,
	updateFunc func(u *domain.User) (*domain.User, error),
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := r.getOrCreateUser(tx, id)
		if err != nil {
			return err // return any error will roll back
		}

		user, err = updateFunc(user)
		if err != nil {
			return err
		}

		err = r.upsertUser(tx, id, user)
		if err != nil {
			return err
		}

		// return nil will commit the whole transaction
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *SqlRepo) getOrCreateUser(tx *gorm.DB, id domain.UserIdentifier) (*domain.User, error) {
	var user domain.User

	// userDefaults will be applied to newly created user records
	userDefaults := domain.User{
		BaseModel: domain.BaseModel{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Id:     id,
		Avatar: domain.DefaultAvatar,
	}

	err := tx.Where("id = ?", id).Attrs(userDefaults).FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *SqlRepo) upsertUser(tx *gorm.DB, id domain.UserIdentifier, user *domain.User) error {
	user.Id = id
	user.UpdatedAt = time.Now()

	return tx.Save(user).Error
}

// GetAllMemberLevels returns all member levels ordered by their points threshold.
func (r *SqlRepo) GetAllMemberLevels(ctx context.Context) ([]domain.MemberLevel, error) {
	var levels []domain.MemberLevel

	err := r.db.WithContext(ctx).Order("min_points asc").Find(&levels).Error
	if err != nil {
		return nil, err
	}

	return levels, nil
}

// endregion users

// region points

// FindPointsRecords returns one page of the given user's points records, newest first.
func (r *SqlRepo) FindPointsRecords(ctx context.Context, userId domain.UserIdentifier, page domain.PageRequest) (
	[]domain.PointsRecord,
	int64,
	error,
) {
	query := r.db.WithContext(ctx).Model(&domain.PointsRecord{}).Where("user_id = ?", userId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []domain.PointsRecord
	err := query.Scopes(paginate(page)).Order("created_at desc, id desc").Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// SavePointsRecord loads the user with the given id and the member levels in one transaction and lets
// updateFunc adjust the user and produce the points record. The user and the record are stored together.
// If no user is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) SavePointsRecord(
	ctx context.Context,
	userId domain.UserIdentifier,
	updateFunc func(u *domain.User, levels []domain.MemberLevel) (*domain.PointsRecord, error),
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userId).First(&user).Error
		if err != nil {
			return mapNotFound(err)
		}

		var levels []domain.MemberLevel
		if err := tx.Order("min_points asc").Find(&levels).Error; err != nil {
			return err
		}

		record, err := updateFunc(&user, levels)
		if err != nil {
			return err
		}

		if record.Id == "" {
			record.Id = domain.PointsRecordIdentifier(uuid.NewString())
		}
		record.UserId = userId
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to store points record: %w", err)
		}

		return r.upsertUser(tx, userId, &user)
	})
}

// endregion points

// region orders

// GetOrder returns the order with the given id.
// If no order is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error) {
	var order domain.Order

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	return &order, nil
}

// FindOrders returns one page of orders that match the given filter, newest first.
func (r *SqlRepo) FindOrders(ctx context.Context, filter domain.OrderFilter, page domain.PageRequest) (
	[]domain.Order,
	int64,
	error,
) {
	query := r.db.WithContext(ctx).Model(&domain.Order{})
	if filter.UserId != "" {
		query = query.Where("user_id = ?", filter.UserId)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := query.Scopes(paginate(page)).Order("created_at desc, id desc").Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// SaveOrder updates the order with the given id.
// If no order is found, a new one is created.
func (r *SqlRepo) SaveOrder(
	ctx context.Context,
	id domain.OrderIdentifier,
	updateFunc func(o *domain.Order) (*domain.Order, error),
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order domain.Order

		defaults := domain.Order{
			Id:      id,
			OrderNo: domain.NewOrderNo(time.Now()),
			Status:  domain.OrderStatusPending,
		}
		if err := tx.Where("id = ?", id).Attrs(defaults).FirstOrCreate(&order).Error; err != nil {
			return err
		}

		updated, err := updateFunc(&order)
		if err != nil {
			return err
		}
		updated.Id = id
		updated.UpdatedAt = time.Now()

		return tx.Save(updated).Error
	})
}

// endregion orders

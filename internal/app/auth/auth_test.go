package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manqiyou/manqiyou/internal/adapters"
	"github.com/manqiyou/manqiyou/internal/app"
	"github.com/manqiyou/manqiyou/internal/config"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// memoryUsers is a minimal in-memory user store.
type memoryUsers struct {
	mux   sync.Mutex
	users map[domain.UserIdentifier]*domain.User
	err   error
}

func (m *memoryUsers) GetUser(_ context.Context, id domain.UserIdentifier) (*domain.User, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memoryUsers) find(match func(u *domain.User) bool) (*domain.User, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryUsers) GetUserByPhone(_ context.Context, phone string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Phone == phone })
}

func (m *memoryUsers) GetUserByWechatOpenId(_ context.Context, openId string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.WechatOpenId == openId })
}

func (m *memoryUsers) SaveUser(
	_ context.Context,
	id domain.UserIdentifier,
	updateFunc func(u *domain.User) (*domain.User, error),
) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	user, ok := m.users[id]
	if !ok {
		user = &domain.User{Id: id}
	}
	cp := *user
	updated, err := updateFunc(&cp)
	if err != nil {
		return err
	}
	m.users[id] = updated
	return nil
}

type mockAdmins struct {
	mock.Mock
}

func (m *mockAdmins) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if admin, ok := args.Get(0).(*domain.Admin); ok {
		return admin, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBus struct {
	mock.Mock
}

func (m *mockBus) Publish(topic string, args ...any) {
	m.Called(append([]any{topic}, args...)...)
}

type fixture struct {
	auth   *Authenticator
	codes  *adapters.MemoryCodeStore
	users  *memoryUsers
	admins *mockAdmins
	bus    *mockBus
}

func newFixture(t *testing.T, adjust ...func(cfg *config.Config)) *fixture {
	cfg := &config.Config{}
	cfg.Auth = config.Auth{
		JwtSecret:              testSecret,
		TokenExpiration:        time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
	}
	cfg.Advanced.CodeTTL = 5 * time.Minute
	for _, fn := range adjust {
		fn(cfg)
	}

	f := &fixture{
		codes:  adapters.NewMemoryCodeStore(cfg.Advanced.CodeTTL, 0),
		users:  &memoryUsers{users: make(map[domain.UserIdentifier]*domain.User)},
		admins: &mockAdmins{},
		bus:    &mockBus{},
	}
	f.bus.On("Publish", mock.Anything, mock.Anything).Return()

	a, err := NewAuthenticator(cfg, f.bus, f.codes, f.users, f.admins)
	require.NoError(t, err)
	a.generateCode = func() (string, error) { return "246810", nil }
	f.auth = a

	return f
}

func assertDomainError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
	assert.Equal(t, message, domainErr.Message)
}

func TestNewAuthenticator_InvalidConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.JwtSecret = "short"

	_, err := NewAuthenticator(cfg, nil, adapters.NewMemoryCodeStore(time.Minute, 0), &memoryUsers{}, &mockAdmins{})
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestRandomCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}

func TestAuthenticator_SendCode(t *testing.T) {
	f := newFixture(t)

	issue, err := f.auth.SendCode(context.Background(), "13800138000")
	require.NoError(t, err)
	assert.Equal(t, "verification code sent", issue.Message)
	assert.Equal(t, int64(300), issue.ExpiresIn)
	assert.Empty(t, issue.Code)

	code, ok := f.codes.Get("13800138000")
	assert.True(t, ok)
	assert.Equal(t, "246810", code)
}

func TestAuthenticator_SendCode_Exposed(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) { cfg.Auth.ExposeCode = true })

	issue, err := f.auth.SendCode(context.Background(), "13800138000")
	require.NoError(t, err)
	assert.Equal(t, "246810", issue.Code)
}

func TestAuthenticator_PhoneLogin_RegistersNewUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.SendCode(context.Background(), "13800138000")
	require.NoError(t, err)

	result, err := f.auth.PhoneLogin(context.Background(), "13800138000", "246810")
	require.NoError(t, err)
	assert.Equal(t, domain.TokenTypeBearer, result.TokenType)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "13800138000", result.User.Phone)
	assert.Equal(t, defaultNickname, result.User.Nickname)
	assert.Equal(t, domain.DefaultAvatar, result.User.Avatar)
	assert.NotNil(t, result.User.LastLoginAt)

	// the code is single use
	_, ok := f.codes.Get("13800138000")
	assert.False(t, ok)

	f.bus.AssertCalled(t, "Publish", app.TopicUserRegistered, mock.AnythingOfType("domain.User"))
	f.bus.AssertCalled(t, "Publish", app.TopicAuthLogin,
		domain.LoginEvent{UserId: result.User.Id, Method: domain.LoginMethodPhone})

	info, err := f.auth.Authenticate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.Id, info.Id)
}

func TestAuthenticator_PhoneLogin_ExistingUser(t *testing.T) {
	f := newFixture(t)
	f.users.users["user-1"] = &domain.User{Id: "user-1", Phone: "13800138000", Nickname: "old hand"}
	f.codes.Put("13800138000", "111111")

	result, err := f.auth.PhoneLogin(context.Background(), "13800138000", "111111")
	require.NoError(t, err)
	assert.Equal(t, domain.UserIdentifier("user-1"), result.User.Id)
	assert.Equal(t, "old hand", result.User.Nickname)
	f.bus.AssertNotCalled(t, "Publish", app.TopicUserRegistered, mock.Anything)
}

func TestAuthenticator_PhoneLogin_InvalidCode(t *testing.T) {
	f := newFixture(t)
	f.codes.Put("13800138000", "111111")

	_, err := f.auth.PhoneLogin(context.Background(), "13800138000", "222222")
	assertDomainError(t, err, http.StatusBadRequest, "invalid or expired verification code")

	_, err = f.auth.PhoneLogin(context.Background(), "13900000000", "111111")
	assertDomainError(t, err, http.StatusBadRequest, "invalid or expired verification code")

	// the well known development code is not accepted unless configured
	_, err = f.auth.PhoneLogin(context.Background(), "13800138000", "123456")
	assertDomainError(t, err, http.StatusBadRequest, "invalid or expired verification code")

	var illegal *domain.IllegalArgumentError
	_, err = f.auth.PhoneLogin(context.Background(), "13800138000", "")
	assert.ErrorAs(t, err, &illegal)
}

func TestAuthenticator_PhoneLogin_BypassCode(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) { cfg.Auth.BypassCode = "123456" })

	result, err := f.auth.PhoneLogin(context.Background(), "13800138000", "123456")
	require.NoError(t, err)
	assert.Equal(t, "13800138000", result.User.Phone)
}

func TestAuthenticator_PhoneLogin_RepositoryFailure(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) { cfg.Auth.BypassCode = "123456" })
	f.users.err = errors.New("db down")

	_, err := f.auth.PhoneLogin(context.Background(), "13800138000", "123456")
	var domainErr *domain.DomainError
	assert.NotErrorAs(t, err, &domainErr)
	assert.ErrorContains(t, err, "db down")
}

func TestAuthenticator_WechatLogin(t *testing.T) {
	f := newFixture(t)

	first, err := f.auth.WechatLogin(context.Background(), "wx-code-1")
	require.NoError(t, err)
	assert.Equal(t, wechatNickname, first.User.Nickname)
	assert.Empty(t, first.User.Phone)

	again, err := f.auth.WechatLogin(context.Background(), "wx-code-1")
	require.NoError(t, err)
	assert.Equal(t, first.User.Id, again.User.Id)

	other, err := f.auth.WechatLogin(context.Background(), "wx-code-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.User.Id, other.User.Id)

	var illegal *domain.IllegalArgumentError
	_, err = f.auth.WechatLogin(context.Background(), " ")
	assert.ErrorAs(t, err, &illegal)
}

func TestAuthenticator_RefreshToken(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) { cfg.Auth.BypassCode = "123456" })
	login, err := f.auth.PhoneLogin(context.Background(), "13800138000", "123456")
	require.NoError(t, err)

	pair, err := f.auth.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	info, err := f.auth.Authenticate(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, login.User.Id, info.Id)

	_, err = f.auth.RefreshToken(context.Background(), login.Token)
	assertDomainError(t, err, http.StatusUnauthorized, "invalid token")

	delete(f.users.users, login.User.Id)
	_, err = f.auth.RefreshToken(context.Background(), login.RefreshToken)
	assertDomainError(t, err, http.StatusUnauthorized, "invalid token")
}

func TestAuthenticator_AdminLogin(t *testing.T) {
	f := newFixture(t)
	admin := &domain.Admin{Id: "admin-1", Username: "admin", Password: "secret", Role: domain.AdminRoleAdmin}
	require.NoError(t, admin.HashPassword())
	f.admins.On("GetAdminByUsername", mock.Anything, "admin").Return(admin, nil)
	f.admins.On("GetAdminByUsername", mock.Anything, "nobody").Return(nil, domain.ErrNotFound)

	result, err := f.auth.AdminLogin(context.Background(), "admin", "secret")
	require.NoError(t, err)
	info, err := f.auth.Authenticate(result.Token)
	require.NoError(t, err)
	assert.True(t, info.IsAdmin)

	_, err = f.auth.AdminLogin(context.Background(), "admin", "wrong")
	assertDomainError(t, err, http.StatusUnauthorized, "invalid username or password")

	_, err = f.auth.AdminLogin(context.Background(), "nobody", "secret")
	assertDomainError(t, err, http.StatusUnauthorized, "invalid username or password")
}

func TestAuthenticator_Authenticate_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Authenticate("")
	assertDomainError(t, err, http.StatusUnauthorized, "not logged in")
}

func TestAuthenticator_CurrentUser(t *testing.T) {
	f := newFixture(t)
	f.users.users["user-1"] = &domain.User{Id: "user-1", Nickname: "rider"}

	ctx := domain.SetUserInfo(context.Background(), &domain.ContextUserInfo{Id: "user-1"})
	user, err := f.auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rider", user.Nickname)

	_, err = f.auth.CurrentUser(context.Background())
	assertDomainError(t, err, http.StatusUnauthorized, "not logged in")

	ghost := domain.SetUserInfo(context.Background(), &domain.ContextUserInfo{Id: "ghost"})
	_, err = f.auth.CurrentUser(ghost)
	assertDomainError(t, err, http.StatusNotFound, "user not found")
}

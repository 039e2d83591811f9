package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/manqiyou/manqiyou/internal/app"
	"github.com/manqiyou/manqiyou/internal/config"
	"github.com/manqiyou/manqiyou/internal/domain"
)

const (
	codeDigits      = 6
	defaultNickname = "Cycling fan"
	wechatNickname  = "WeChat user"
)

// Authenticator implements the mock phone-code, WeChat and cms administrator logins.
type Authenticator struct {
	cfg *config.Config
	bus EventBus

	codes  CodeStore
	users  UserDatabaseRepo
	admins AdminDatabaseRepo
	tokens *TokenService

	generateCode func() (string, error)
	now          func() time.Time
}

func NewAuthenticator(
	cfg *config.Config,
	bus EventBus,
	codes CodeStore,
	users UserDatabaseRepo,
	admins AdminDatabaseRepo,
) (*Authenticator, error) {
	if codes == nil || users == nil || admins == nil {
		return nil, errors.New("missing authenticator dependency")
	}
	if err := cfg.Auth.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth configuration: %w", err)
	}

	return &Authenticator{
		cfg: cfg,
		bus: bus,

		codes:  codes,
		users:  users,
		admins: admins,
		tokens: NewTokenService(cfg.Auth),

		generateCode: randomCode,
		now:          time.Now,
	}, nil
}

func randomCode() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// SendCode generates a verification code for the given phone number. No message is sent, the code is only
// returned to the caller if the configuration exposes it.
func (a *Authenticator) SendCode(_ context.Context, phone string) (*domain.CodeIssue, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.IllegalArgument("phone must not be empty")
	}

	code, err := a.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	a.codes.Put(phone, code)

	issue := &domain.CodeIssue{
		Message:   "verification code sent",
		ExpiresIn: int64(a.cfg.Advanced.CodeTTL.Seconds()),
	}
	if a.cfg.Auth.ExposeCode {
		issue.Code = code
	}

	return issue, nil
}

// PhoneLogin checks the verification code and logs in the user with the given phone number.
// Unknown phone numbers are registered on the fly.
func (a *Authenticator) PhoneLogin(ctx context.Context, phone, code string) (*domain.LoginResult, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" || code == "" {
		return nil, domain.IllegalArgument("phone and code must not be empty")
	}

	if !a.checkCode(phone, code) {
		return nil, domain.BadRequest("invalid or expired verification code")
	}
	a.codes.Delete(phone)

	user, err := a.findOrCreateUser(ctx,
		func() (*domain.User, error) { return a.users.GetUserByPhone(ctx, phone) },
		func(u *domain.User) {
			u.Phone = phone
			u.Nickname = defaultNickname
		})
	if err != nil {
		return nil, err
	}

	return a.completeLogin(ctx, user, domain.LoginMethodPhone)
}

func (a *Authenticator) checkCode(phone, code string) bool {
	if stored, ok := a.codes.Get(phone); ok && subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1 {
		return true
	}

	bypass := a.cfg.Auth.BypassCode
	return bypass != "" && subtle.ConstantTimeCompare([]byte(bypass), []byte(code)) == 1
}

// WechatLogin logs in the user that is bound to the WeChat authorization code.
// The open id is derived from the code, no WeChat API is contacted.
func (a *Authenticator) WechatLogin(ctx context.Context, code string) (*domain.LoginResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.IllegalArgument("code must not be empty")
	}

	sum := sha256.Sum256([]byte(code))
	openId := "wx_" + hex.EncodeToString(sum[:])[:28]

	user, err := a.findOrCreateUser(ctx,
		func() (*domain.User, error) { return a.users.GetUserByWechatOpenId(ctx, openId) },
		func(u *domain.User) {
			u.WechatOpenId = openId
			u.Nickname = wechatNickname
		})
	if err != nil {
		return nil, err
	}

	return a.completeLogin(ctx, user, domain.LoginMethodWechat)
}

func (a *Authenticator) findOrCreateUser(
	ctx context.Context,
	lookup func() (*domain.User, error),
	initialize func(u *domain.User),
) (*domain.User, error) {
	user, err := lookup()
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("unable to load user: %w", err)
	}

	id := domain.UserIdentifier(uuid.NewString())
	err = a.users.SaveUser(ctx, id, func(u *domain.User) (*domain.User, error) {
		initialize(u)
		if u.Avatar == "" {
			u.Avatar = domain.DefaultAvatar
		}
		user = u
		return u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if a.bus != nil {
		a.bus.Publish(app.TopicUserRegistered, *user)
	}

	return user, nil
}

func (a *Authenticator) completeLogin(ctx context.Context, user *domain.User, method domain.LoginMethod) (
	*domain.LoginResult,
	error,
) {
	loginTime := a.now()
	err := a.users.SaveUser(ctx, user.Id, func(u *domain.User) (*domain.User, error) {
		u.LastLoginAt = &loginTime
		user = u
		return u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	tokens, err := a.tokens.IssueUserTokens(user)
	if err != nil {
		return nil, err
	}

	if a.bus != nil {
		a.bus.Publish(app.TopicAuthLogin, domain.LoginEvent{UserId: user.Id, Method: method})
	}

	return &domain.LoginResult{
		TokenPair: tokens,
		User:      user,
	}, nil
}

// RefreshToken issues a new token pair for a valid refresh token.
func (a *Authenticator) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	userId, err := a.tokens.ParseRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetUser(ctx, userId)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Unauthorized("invalid token")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load user %s: %w", userId, err)
	}

	tokens, err := a.tokens.IssueUserTokens(user)
	if err != nil {
		return nil, err
	}

	return &tokens, nil
}

// AdminLogin checks the cms administrator credentials.
func (a *Authenticator) AdminLogin(ctx context.Context, username, password string) (*domain.AdminLoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.IllegalArgument("username and password must not be empty")
	}

	admin, err := a.admins.GetAdminByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Unauthorized("invalid username or password")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load admin %s: %w", username, err)
	}

	if err := admin.CheckPassword(password); err != nil {
		return nil, err
	}

	tokens, err := a.tokens.IssueAdminToken(admin)
	if err != nil {
		return nil, err
	}

	if a.bus != nil {
		a.bus.Publish(app.TopicAuthLogin,
			domain.LoginEvent{UserId: domain.UserIdentifier(admin.Id), Method: domain.LoginMethodAdmin})
	}

	return &domain.AdminLoginResult{
		TokenPair: tokens,
		Admin:     admin,
	}, nil
}

// Authenticate verifies a bearer token and returns the session information.
func (a *Authenticator) Authenticate(token string) (*domain.ContextUserInfo, error) {
	if token == "" {
		return nil, domain.Unauthorized("not logged in")
	}

	return a.tokens.ParseAccessToken(token)
}

// CurrentUser returns the user of the current session.
func (a *Authenticator) CurrentUser(ctx context.Context) (*domain.User, error) {
	if err := domain.ValidateUserAccessRights(ctx); err != nil {
		return nil, err
	}

	id := domain.GetUserInfo(ctx).Id
	user, err := a.users.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load user %s: %w", id, err)
	}

	return user, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manqiyou/manqiyou/internal/app/api/core"
	"github.com/manqiyou/manqiyou/internal/app/api/core/translator"
	"github.com/manqiyou/manqiyou/internal/app/orders"
	"github.com/manqiyou/manqiyou/internal/app/users"
	"github.com/manqiyou/manqiyou/internal/app/validation"
	"github.com/manqiyou/manqiyou/internal/config"
	"github.com/manqiyou/manqiyou/internal/domain"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type fakeTokens map[string]*domain.ContextUserInfo

func (f fakeTokens) Authenticate(token string) (*domain.ContextUserInfo, error) {
	if token == "" {
		return nil, domain.Unauthorized("not logged in")
	}
	info, ok := f[token]
	if !ok {
		return nil, domain.Unauthorized("invalid token")
	}
	return info, nil
}

type testEnvelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type testApi struct {
	server  *core.Server
	catalog *mockCatalog
	orders  *mockOrders
	users   *mockUsers
	auth    *mockAuth
	content *mockContent
}

func newTestApi(t *testing.T) *testApi {
	t.Helper()

	cfg := &config.Config{}
	cfg.Web.CorsOrigins = []string{"*"}

	tr := translator.New()
	authenticator := NewAuthenticationHandler(tr, fakeTokens{
		userToken:  {Id: "u1", Phone: "13800138000"},
		adminToken: {Id: "a1", IsAdmin: true},
	})
	validator := validation.New()

	api := &testApi{
		catalog: &mockCatalog{},
		orders:  &mockOrders{},
		users:   &mockUsers{},
		auth:    &mockAuth{},
		content: &mockContent{},
	}

	server, err := core.NewServer(cfg, tr, NewRestApi(authenticator,
		NewHealthEndpoint(tr),
		NewCatalogEndpoint(tr, authenticator, validator, api.catalog),
		NewContentEndpoint(tr, authenticator, validator, api.content),
		NewAuthEndpoint(tr, authenticator, validator, api.auth),
		NewUserEndpoint(tr, authenticator, validator, api.users),
		NewOrderEndpoint(tr, authenticator, validator, api.orders),
	))
	require.NoError(t, err)
	api.server = server

	return api
}

func (a *testApi) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.server.ServeHTTP(rec, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func userIs(id domain.UserIdentifier) any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return domain.GetUserInfo(ctx).Id == id
	})
}

func TestHealthEndpoint(t *testing.T) {
	api := newTestApi(t)

	rec, env := api.do(t, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "success", env.Message)
	assert.NotZero(t, env.Timestamp)

	var health map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "UP", health["status"])
	assert.Equal(t, serviceName, health["service"])

	_, env = api.do(t, http.MethodGet, "/api/v1/info", "", "")
	assert.Contains(t, string(env.Data), "endpoints")
}

func TestUnknownEndpoint(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		path        string
		wantCode    int
		wantMessage string
	}{
		{"unknown api path", http.MethodGet, "/api/v1/does-not-exist", 404, "endpoint not found"},
		{"path outside the api", http.MethodGet, "/elsewhere", 404, "endpoint not found"},
		{"root path", http.MethodGet, "/", 404, "endpoint not found"},
		{"wrong method", http.MethodDelete, "/api/v1/health", 405, "method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestApi(t)

			rec, env := api.do(t, tt.method, tt.path, "", "")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Equal(t, "null", string(env.Data))
		})
	}
}

func TestUnknownEndpoint_keepsAllowHeader(t *testing.T) {
	api := newTestApi(t)

	rec, _ := api.do(t, http.MethodDelete, "/api/v1/health", "", "")
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodGet)
}

func TestCatalogEndpoint_Featured(t *testing.T) {
	api := newTestApi(t)
	api.catalog.On("GetFeaturedRoutes", mock.Anything, 4).
		Return([]domain.Route{{Id: 1, Name: "Erhai Lake"}}, nil)

	rec, env := api.do(t, http.MethodGet, "/api/v1/routes/featured", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Erhai Lake")
	api.catalog.AssertExpectations(t)
}

func TestCatalogEndpoint_List(t *testing.T) {
	api := newTestApi(t)
	page := domain.PageRequest{Page: 2, Size: 5}
	filter := domain.RouteFilter{CategoryId: 3, Difficulty: "easy"}
	api.catalog.On("FindRoutes", mock.Anything, filter, page).
		Return(domain.NewPageResult([]domain.Route{{Id: 7}}, 6, page), nil)

	rec, env := api.do(t, http.MethodGet, "/api/v1/routes?page=2&size=5&categoryId=3&difficulty=easy", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "6", rec.Header().Get("X-Total-Count"))

	var result domain.PageResult[domain.Route]
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(6), result.Total)
	assert.Equal(t, 2, result.TotalPages)
}

func TestCatalogEndpoint_List_InvalidQuery(t *testing.T) {
	api := newTestApi(t)

	rec, env := api.do(t, http.MethodGet, "/api/v1/routes?page=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `invalid page: "abc"`, env.Message)

	_, env = api.do(t, http.MethodGet, "/api/v1/routes/0", "", "")
	assert.Equal(t, 400, env.Code)
	api.catalog.AssertNotCalled(t, "FindRoutes", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogEndpoint_RouteNotFound(t *testing.T) {
	api := newTestApi(t)
	api.catalog.On("GetRoute", mock.Anything, domain.RouteIdentifier(9)).
		Return(nil, domain.NotFound("route not found"))

	rec, env := api.do(t, http.MethodGet, "/api/v1/routes/9", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", env.Message)
}

func TestCatalogEndpoint_AdminRoutes(t *testing.T) {
	api := newTestApi(t)
	body := `{"name":"Shangri-La loop","difficulty":"moderate","duration":5,"price":2999,"status":1}`

	_, env := api.do(t, http.MethodPost, "/api/v1/routes", "", body)
	assert.Equal(t, 401, env.Code)
	assert.Equal(t, "not logged in", env.Message)

	_, env = api.do(t, http.MethodPost, "/api/v1/routes", "bogus", body)
	assert.Equal(t, 401, env.Code)
	assert.Equal(t, "invalid token", env.Message)

	_, env = api.do(t, http.MethodPost, "/api/v1/routes", userToken, body)
	assert.Equal(t, 403, env.Code)

	api.catalog.On("CreateRoute", userIs("a1"), mock.Anything).
		Return(&domain.Route{Id: 11, Name: "Shangri-La loop"}, nil)
	rec, env := api.do(t, http.MethodPost, "/api/v1/routes", adminToken, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "route created", env.Message)
	api.catalog.AssertExpectations(t)
}

func TestCatalogEndpoint_CreateRoute_ValidationMessages(t *testing.T) {
	api := newTestApi(t)

	rec, env := api.do(t, http.MethodPost, "/api/v1/routes", adminToken, `{"duration":1,"difficulty":"extreme"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required, difficulty must be one of [easy moderate hard]", env.Message)

	_, env = api.do(t, http.MethodPost, "/api/v1/routes", adminToken, `{"name":`)
	assert.Equal(t, "malformed request body", env.Message)
}

func TestContentEndpoint(t *testing.T) {
	api := newTestApi(t)
	page := domain.PageRequest{Page: 1, Size: domain.DefaultPageSize}
	api.content.On("FindContent", mock.Anything, domain.ContentTypeBanner, page).
		Return(domain.NewPageResult([]domain.Content{{Id: "c1"}}, 1, page), nil)

	rec, _ := api.do(t, http.MethodGet, "/api/v1/content?type=banner", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))

	_, env := api.do(t, http.MethodPost, "/api/v1/content", adminToken, `{"type":"poster","title":"x"}`)
	assert.Equal(t, "type must be one of [banner news activity]", env.Message)

	api.content.On("DeleteContent", userIs("a1"), domain.ContentIdentifier("c1")).Return(nil)
	rec, env = api.do(t, http.MethodDelete, "/api/v1/content/c1", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(env.Data))
	api.content.AssertExpectations(t)
}

func TestAuthEndpoint_Login(t *testing.T) {
	api := newTestApi(t)

	_, env := api.do(t, http.MethodPost, "/api/v1/auth/login", "", `{}`)
	assert.Equal(t, 400, env.Code)
	assert.Equal(t, "phone is required, code is required", env.Message)

	_, env = api.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"phone":"12345","code":"123456"}`)
	assert.Equal(t, "phone must be a valid mobile number", env.Message)

	api.auth.On("PhoneLogin", mock.Anything, "13800138000", "123456").Return(&domain.LoginResult{
		TokenPair: domain.TokenPair{Token: "t", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 3600},
		User:      &domain.User{Id: "u1"},
	}, nil)
	rec, env := api.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"phone":"13800138000","code":"123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "login successful", env.Message)
	assert.JSONEq(t, `"Bearer"`, jsonField(t, env.Data, "tokenType"))
}

func TestAuthEndpoint_SendCode(t *testing.T) {
	api := newTestApi(t)
	api.auth.On("SendCode", mock.Anything, "13800138000").
		Return(&domain.CodeIssue{Message: "verification code sent", ExpiresIn: 300}, nil)

	_, env := api.do(t, http.MethodPost, "/api/v1/auth/send-code", "", `{"phone":"13800138000"}`)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "verification code sent", env.Message)
	assert.NotContains(t, string(env.Data), `"code"`)
}

func TestAuthEndpoint_Me(t *testing.T) {
	api := newTestApi(t)

	rec, env := api.do(t, http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "not logged in", env.Message)

	api.auth.On("CurrentUser", userIs("u1")).Return(&domain.User{Id: "u1", Nickname: "rider"}, nil)
	_, env = api.do(t, http.MethodGet, "/api/v1/auth/me", userToken, "")
	assert.Equal(t, 200, env.Code)
	assert.Contains(t, string(env.Data), "rider")
}

func TestUserEndpoint_Points(t *testing.T) {
	api := newTestApi(t)
	body := `{"userId":"u1","amount":100,"type":"earn","source":"order"}`

	_, env := api.do(t, http.MethodPost, "/api/v1/points", userToken, body)
	assert.Equal(t, 403, env.Code)

	_, env = api.do(t, http.MethodPost, "/api/v1/points", adminToken, `{"userId":"u1","amount":0,"type":"gift"}`)
	assert.Equal(t, "amount must be greater than 0, type must be one of [earn spend]", env.Message)

	change := users.PointsChange{UserId: "u1", Amount: 100, Type: domain.PointsTypeEarn, Source: "order"}
	api.users.On("RecordPoints", mock.Anything, change).
		Return(nil, domain.BadRequest("insufficient points")).Once()
	_, env = api.do(t, http.MethodPost, "/api/v1/points", adminToken, body)
	assert.Equal(t, 400, env.Code)
	assert.Equal(t, "insufficient points", env.Message)
}

func TestUserEndpoint_MemberLevelsArePublic(t *testing.T) {
	api := newTestApi(t)
	api.users.On("GetMemberLevels", mock.Anything).
		Return([]domain.MemberLevel{{Id: "rider", Name: "Rider"}}, nil)

	rec, env := api.do(t, http.MethodGet, "/api/v1/member-levels", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Rider")
}

func TestOrderEndpoint(t *testing.T) {
	api := newTestApi(t)

	_, env := api.do(t, http.MethodGet, "/api/v1/orders", "", "")
	assert.Equal(t, 401, env.Code)

	booking := orders.Booking{RouteId: 3, Participants: 2, ContactName: "Li", ContactPhone: "13800138000"}
	api.orders.On("CreateOrder", userIs("u1"), booking).
		Return(&domain.Order{Id: "o1", OrderNo: "MQY1", Status: domain.OrderStatusPending}, nil)
	_, env = api.do(t, http.MethodPost, "/api/v1/orders", userToken,
		`{"routeId":3,"participants":2,"contactName":"Li","contactPhone":"13800138000"}`)
	assert.Equal(t, "order created", env.Message)

	_, env = api.do(t, http.MethodPost, "/api/v1/orders", userToken, `{"participants":0}`)
	assert.Equal(t, "routeId is required, participants must be greater than or equal to 1, "+
		"contactName is required, contactPhone is required", env.Message)

	api.orders.On("GetOrder", userIs("u1"), domain.OrderIdentifier("o2")).
		Return(nil, domain.NotFound("order not found"))
	rec, env := api.do(t, http.MethodGet, "/api/v1/orders/o2", userToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order not found", env.Message)

	api.orders.On("CancelOrder", userIs("u1"), domain.OrderIdentifier("o1")).
		Return(nil, domain.BadRequest("order in status completed can not be cancelled"))
	_, env = api.do(t, http.MethodPost, "/api/v1/orders/o1/cancel", userToken, "")
	assert.Equal(t, 400, env.Code)

	api.orders.AssertExpectations(t)
}

func TestOrderEndpoint_UnexpectedErrorsAreHidden(t *testing.T) {
	api := newTestApi(t)
	api.orders.On("GetOrders", mock.Anything, domain.OrderStatus(""), mock.Anything).
		Return(domain.PageResult[domain.Order]{}, errors.New("dial tcp 10.0.0.1:3306: connection refused"))

	rec, env := api.do(t, http.MethodGet, "/api/v1/orders", userToken, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", env.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}

func TestOrderEndpoint_PanicIsEnveloped(t *testing.T) {
	api := newTestApi(t)
	api.orders.On("GetOrder", mock.Anything, domain.OrderIdentifier("boom")).
		Run(func(mock.Arguments) { panic("nil map write") })

	rec, env := api.do(t, http.MethodGet, "/api/v1/orders/boom", userToken, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", env.Message)
}

func TestUserHasScopes(t *testing.T) {
	user := &domain.ContextUserInfo{Id: "u1"}
	admin := &domain.ContextUserInfo{Id: "a1", IsAdmin: true}

	assert.True(t, UserHasScopes(user))
	assert.True(t, UserHasScopes(user, ScopeUser))
	assert.False(t, UserHasScopes(user, ScopeAdmin))
	assert.True(t, UserHasScopes(admin, ScopeAdmin, ScopeUser))
	assert.False(t, UserHasScopes(domain.DefaultContextUserInfo(), ScopeUser))
}

func jsonField(t *testing.T, data json.RawMessage, field string) string {
	t.Helper()
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &obj))
	return string(obj[field])
}

// region mocks

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetFeaturedRoutes(ctx context.Context, limit int) ([]domain.Route, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *mockCatalog) FindRoutes(ctx context.Context, filter domain.RouteFilter, page domain.PageRequest) (
	domain.PageResult[domain.Route],
	error,
) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(domain.PageResult[domain.Route]), args.Error(1)
}

func (m *mockCatalog) GetRoute(ctx context.Context, id domain.RouteIdentifier) (*domain.Route, error) {
	args := m.Called(ctx, id)
	route, _ := args.Get(0).(*domain.Route)
	return route, args.Error(1)
}

func (m *mockCatalog) CreateRoute(ctx context.Context, route *domain.Route) (*domain.Route, error) {
	args := m.Called(ctx, route)
	created, _ := args.Get(0).(*domain.Route)
	return created, args.Error(1)
}

func (m *mockCatalog) UpdateRoute(ctx context.Context, id domain.RouteIdentifier, route *domain.Route) (
	*domain.Route,
	error,
) {
	args := m.Called(ctx, id, route)
	updated, _ := args.Get(0).(*domain.Route)
	return updated, args.Error(1)
}

func (m *mockCatalog) DeleteRoute(ctx context.Context, id domain.RouteIdentifier) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalog) GetCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCatalog) GetCategory(ctx context.Context, id domain.CategoryIdentifier) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *mockCatalog) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	created, _ := args.Get(0).(*domain.Category)
	return created, args.Error(1)
}

type mockContent struct {
	mock.Mock
}

func (m *mockContent) FindContent(ctx context.Context, contentType domain.ContentType, page domain.PageRequest) (
	domain.PageResult[domain.Content],
	error,
) {
	args := m.Called(ctx, contentType, page)
	return args.Get(0).(domain.PageResult[domain.Content]), args.Error(1)
}

func (m *mockContent) GetContent(ctx context.Context, id domain.ContentIdentifier) (*domain.Content, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*domain.Content)
	return item, args.Error(1)
}

func (m *mockContent) CreateContent(ctx context.Context, item *domain.Content) (*domain.Content, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(*domain.Content)
	return created, args.Error(1)
}

func (m *mockContent) UpdateContent(ctx context.Context, id domain.ContentIdentifier, item *domain.Content) (
	*domain.Content,
	error,
) {
	args := m.Called(ctx, id, item)
	updated, _ := args.Get(0).(*domain.Content)
	return updated, args.Error(1)
}

func (m *mockContent) DeleteContent(ctx context.Context, id domain.ContentIdentifier) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) SendCode(ctx context.Context, phone string) (*domain.CodeIssue, error) {
	args := m.Called(ctx, phone)
	issue, _ := args.Get(0).(*domain.CodeIssue)
	return issue, args.Error(1)
}

func (m *mockAuth) PhoneLogin(ctx context.Context, phone, code string) (*domain.LoginResult, error) {
	args := m.Called(ctx, phone, code)
	result, _ := args.Get(0).(*domain.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuth) WechatLogin(ctx context.Context, code string) (*domain.LoginResult, error) {
	args := m.Called(ctx, code)
	result, _ := args.Get(0).(*domain.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuth) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	tokens, _ := args.Get(0).(*domain.TokenPair)
	return tokens, args.Error(1)
}

func (m *mockAuth) AdminLogin(ctx context.Context, username, password string) (*domain.AdminLoginResult, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(*domain.AdminLoginResult)
	return result, args.Error(1)
}

func (m *mockAuth) CurrentUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUsers) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, update)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUsers) GetMemberLevels(ctx context.Context) ([]domain.MemberLevel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MemberLevel), args.Error(1)
}

func (m *mockUsers) GetPointsRecords(ctx context.Context, page domain.PageRequest) (
	domain.PageResult[domain.PointsRecord],
	error,
) {
	args := m.Called(ctx, page)
	return args.Get(0).(domain.PageResult[domain.PointsRecord]), args.Error(1)
}

func (m *mockUsers) RecordPoints(ctx context.Context, change users.PointsChange) (*domain.PointsRecord, error) {
	args := m.Called(ctx, change)
	record, _ := args.Get(0).(*domain.PointsRecord)
	return record, args.Error(1)
}

type mockOrders struct {
	mock.Mock
}

func (m *mockOrders) CreateOrder(ctx context.Context, booking orders.Booking) (*domain.Order, error) {
	args := m.Called(ctx, booking)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *mockOrders) GetOrders(ctx context.Context, status domain.OrderStatus, page domain.PageRequest) (
	domain.PageResult[domain.Order],
	error,
) {
	args := m.Called(ctx, status, page)
	return args.Get(0).(domain.PageResult[domain.Order]), args.Error(1)
}

func (m *mockOrders) GetOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *mockOrders) CancelOrder(ctx context.Context, id domain.OrderIdentifier) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

// endregion mocks

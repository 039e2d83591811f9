package domain

const TokenTypeBearer = "Bearer"

// LoginMethod describes how a principal authenticated.
type LoginMethod string

const (
	LoginMethodPhone  LoginMethod = "phone"
	LoginMethodWechat LoginMethod = "wechat"
	LoginMethodAdmin  LoginMethod = "admin"
)

// TokenPair is the result of a successful login or token refresh.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"` // seconds
}

// LoginResult is returned to a user after a successful login.
type LoginResult struct {
	TokenPair
	User *User `json:"user"`
}

// AdminLoginResult is returned to an admin after a successful login.
type AdminLoginResult struct {
	TokenPair
	Admin *Admin `json:"admin"`
}

// LoginEvent is published on the event bus after every successful login.
type LoginEvent struct {
	UserId UserIdentifier
	Method LoginMethod
}

// CodeIssue is the response to a verification code request.
type CodeIssue struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"` // only set in development setups
	ExpiresIn int64  `json:"expiresIn"`      // seconds
}

package models

// SendCodeRequest asks for a verification code for the given phone number.
type SendCodeRequest struct {
	Phone string `json:"phone" validate:"required,mobile"` // The mobile number of the user.
}

// LoginRequest logs in a user with a phone number and the verification code that was sent to it.
type LoginRequest struct {
	Phone string `json:"phone" validate:"required,mobile"`
	Code  string `json:"code" validate:"required,max=16"`
}

// WechatLoginRequest logs in a user with a WeChat authorization code.
type WechatLoginRequest struct {
	Code string `json:"code" validate:"required,max=128"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AdminLoginRequest logs in a cms administrator.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

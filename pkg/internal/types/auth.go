package types

// LoginRequest 用户名密码登录请求.
type LoginRequest struct {
	Username string `json:"username" rule:"required"`
	Password string `json:"password" rule:"required"`
}

// LoginResponse 登录成功后返回的 API Key 及角色.
type LoginResponse struct {
	APIKey   string `json:"api_key"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

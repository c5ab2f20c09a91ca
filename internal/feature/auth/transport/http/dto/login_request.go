package dto

// LoginReq は/loginエンドポイントのリクエストボディです。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

package request

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type ExchangeRequest struct {
	Token string `json:"token" binding:"required"`
}

package dto

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	// Username also accepts the account email.
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserProfile struct {
	ID        uint64  `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

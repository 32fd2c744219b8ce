package dto

// LoginRequest authenticates a member by email/password
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued bearer token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	MemberID    string `json:"member_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

package dto

// RegisterRequest creates a new account
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates with username or email plus password
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// GoogleAuthRequest authenticates with a Google ID token
type GoogleAuthRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginResponse returns the issued token and the account profile
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// VerificationRequest submits identity details for the owner verification
// workflow. The document itself arrives as a multipart file.
type VerificationRequest struct {
	Age         int    `form:"age" binding:"required"`
	Address     string `form:"address" binding:"required"`
	PhoneNumber string `form:"phoneNumber" binding:"required"`
}

// VerificationDecisionRequest is the admin's approve/reject decision
type VerificationDecisionRequest struct {
	UserID  uint `json:"userId" binding:"required"`
	Approve bool `json:"approve"`
}

// UserResponse is the public account shape
type UserResponse struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Avatar             string `json:"avatar,omitempty"`
	Role               int    `json:"role"`
	IsVerified         bool   `json:"isVerified"`
	VerificationStatus int    `json:"verificationStatus"`
}

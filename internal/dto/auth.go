package dto

import "time"

// LoginRequest defines the credentials for a staff login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the data returned after a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userID"`
	CompanyID string    `json:"companyID,omitempty"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
}

package users

import "playoh/internal/domain"

// User is the profile returned by /Auth/me.
type User struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       *string     `json:"phone"`
	Role        string      `json:"role"`
	IsAdmin     bool        `json:"isAdmin"`
	CreatedAt   domain.Time `json:"createdAt"`
	LastLoginAt domain.Time `json:"lastLoginAt"`
}

// Snapshot is the cached profile kept next to the session token: the auth
// response without its token.
type Snapshot struct {
	UserID    int64       `json:"userId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     *string     `json:"phone"`
	Role      string      `json:"role"`
	IsAdmin   bool        `json:"isAdmin"`
	ExpiresAt domain.Time `json:"expiresAt"`
}

type AuthResponse struct {
	UserID    int64       `json:"userId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     *string     `json:"phone"`
	Role      string      `json:"role"`
	IsAdmin   bool        `json:"isAdmin"`
	Token     string      `json:"token"`
	ExpiresAt domain.Time `json:"expiresAt"`
}

// Split separates the credential from the profile snapshot.
func (a AuthResponse) Split() (string, Snapshot) {
	return a.Token, Snapshot{
		UserID:    a.UserID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Role:      a.Role,
		IsAdmin:   a.IsAdmin,
		ExpiresAt: a.ExpiresAt,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirmPassword"`
	IsAdmin         *bool   `json:"isAdmin,omitempty"`
}

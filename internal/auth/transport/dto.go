package transport

import "github.com/google/uuid"

// LoginRequest carries credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// RefreshRequest carries a refresh token to exchange for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenPairResponse carries a freshly issued access/refresh token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CreateUserRequest carries data for the admin user-creation endpoint.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=150"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

// UpdateUserRequest carries a partial update for a user account.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	Active   *bool   `json:"active,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

// UserResponse represents a user account in API responses.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// UserListResponse wraps the list of user accounts.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}

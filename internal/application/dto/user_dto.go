package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=admin user"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// UpdateUserRequest campos opcionales; Password vacío mantiene el hash actual.
type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin user"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// UserListQuery filtros de GET /api/users.
type UserListQuery struct {
	PageRequest
	Search string `query:"search"`
	Role   string `query:"role" validate:"omitempty,oneof=admin user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	HasPassword bool      `json:"has_password"`
	GitHub      bool      `json:"github_linked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login local.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyResponse identidad contenida en un token válido.
type VerifyResponse struct {
	Valid bool   `json:"valid"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GitHubURLResponse URL de autorización cuando el cliente prefiere no seguir el redirect.
type GitHubURLResponse struct {
	URL string `json:"url"`
}

package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una cuenta del sistema. Puede autenticarse con contraseña,
// con GitHub (identidad federada) o con ambos.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt; vacío en cuentas solo federadas
	Role         string // admin, user
	GitHubID     string // vacío si nunca inició sesión con GitHub
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword informa si la cuenta admite login local.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// IsValidRole informa si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

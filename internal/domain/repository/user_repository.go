package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByGitHubID(ctx context.Context, githubID string) (*entity.User, error)

	// LinkGitHub asocia la identidad externa a una cuenta existente. No toca password_hash.
	LinkGitHub(ctx context.Context, userID, githubID, avatarURL string) error

	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
	Delete(ctx context.Context, id string) error
}

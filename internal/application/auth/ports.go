package auth

import (
	"context"
	"time"
)

// FederatedProfile identidad devuelta por el proveedor externo (GitHub).
type FederatedProfile struct {
	ExternalID string
	Name       string
	Email      string
	AvatarURL  string
}

// FederatedProvider handshake OAuth con el proveedor externo.
type FederatedProvider interface {
	AuthCodeURL(state string) string
	// FetchProfile intercambia el code y obtiene el perfil (con email resuelto).
	FetchProfile(ctx context.Context, code string) (*FederatedProfile, error)
}

// StateStore guarda los state emitidos hasta que vuelven en el callback (un solo uso).
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume devuelve true y borra el state si existía y no había expirado.
	Consume(ctx context.Context, state string) (bool, error)
}

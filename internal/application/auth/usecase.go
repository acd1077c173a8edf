package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Trazabilidad-api/pkg/jwt"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

// stateTTL vigencia del parámetro state del login con GitHub.
const stateTTL = 10 * time.Minute

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login local, login federado, verificación y autorización.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	provider FederatedProvider // nil si GitHub no está configurado
	states   StateStore
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. provider y states pueden ser nil.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	jwtCfg JWTConfig,
	provider FederatedProvider,
	states StateStore,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, provider: provider, states: states, log: log}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido, cuenta sin contraseña o contraseña incorrecta -> ErrInvalidCredentials (mismo error).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(user)
}

// LoginFederated resuelve la cuenta de una identidad externa: por github_id, luego por email
// (vinculando la identidad sin tocar la contraseña) y si no existe crea una cuenta rol "user".
// Repetir la llamada con el mismo perfil devuelve siempre la misma cuenta.
func (uc *AuthUseCase) LoginFederated(ctx context.Context, p FederatedProfile) (*dto.LoginResponse, error) {
	if p.ExternalID == "" || p.Email == "" {
		return nil, fmt.Errorf("perfil federado incompleto: %w", domain.ErrValidation)
	}
	user, err := uc.resolveFederated(ctx, p)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return uc.issue(user)
	}

	now := time.Now()
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = p.Email
	}
	user = &entity.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     p.Email,
		Role:      entity.RoleUser,
		GitHubID:  p.ExternalID,
		AvatarURL: p.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		// Otra petición creó la cuenta en paralelo: releer.
		existing, rerr := uc.resolveFederated(ctx, p)
		if rerr != nil {
			return nil, rerr
		}
		if existing == nil {
			return nil, err
		}
		user = existing
	}
	return uc.issue(user)
}

// resolveFederated busca la cuenta por identidad externa y luego por email (vinculando).
// Devuelve (nil, nil) si no existe ninguna.
func (uc *AuthUseCase) resolveFederated(ctx context.Context, p FederatedProfile) (*entity.User, error) {
	user, err := uc.userRepo.GetByGitHubID(ctx, p.ExternalID)
	if err != nil || user != nil {
		return user, err
	}
	user, err = uc.userRepo.GetByEmail(ctx, p.Email)
	if err != nil || user == nil {
		return nil, err
	}
	if err := uc.userRepo.LinkGitHub(ctx, user.ID, p.ExternalID, p.AvatarURL); err != nil {
		return nil, err
	}
	user.GitHubID = p.ExternalID
	if p.AvatarURL != "" {
		user.AvatarURL = p.AvatarURL
	}
	return user, nil
}

// Verify valida firma y expiración del token. No consulta la base.
func (uc *AuthUseCase) Verify(token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return claims, nil
}

// Authorize exige que el rol del token esté entre los requeridos. Lista vacía = cualquier rol.
func Authorize(claims *jwt.Claims, roles ...string) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}
	if len(roles) == 0 || slices.Contains(roles, claims.Role) {
		return nil
	}
	return domain.ErrForbidden
}

// GitHubAuthURL genera un state de un solo uso y devuelve la URL de autorización de GitHub.
func (uc *AuthUseCase) GitHubAuthURL(ctx context.Context) (string, error) {
	if uc.provider == nil || uc.states == nil {
		return "", fmt.Errorf("login con GitHub: %w", domain.ErrNotConfigured)
	}
	state, err := randomState()
	if err != nil {
		return "", err
	}
	if err := uc.states.Save(ctx, state, stateTTL); err != nil {
		return "", fmt.Errorf("guardar state: %w", err)
	}
	return uc.provider.AuthCodeURL(state), nil
}

// GitHubCallback valida el state, intercambia el code por el perfil y ejecuta LoginFederated.
func (uc *AuthUseCase) GitHubCallback(ctx context.Context, state, code string) (*dto.LoginResponse, error) {
	if uc.provider == nil || uc.states == nil {
		return nil, fmt.Errorf("login con GitHub: %w", domain.ErrNotConfigured)
	}
	if state == "" || code == "" {
		return nil, fmt.Errorf("callback sin state o code: %w", domain.ErrUnauthorized)
	}
	ok, err := uc.states.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("consumir state: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("state desconocido o expirado: %w", domain.ErrUnauthorized)
	}
	profile, err := uc.provider.FetchProfile(ctx, code)
	if err != nil {
		uc.log.Warn().Err(err).Msg("github: no se pudo obtener el perfil")
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return uc.LoginFederated(ctx, *profile)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.FromUser(user)}, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

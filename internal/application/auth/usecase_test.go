package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Trazabilidad-api/pkg/jwt"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "trazabilidad-test"}

// ── Fakes ─────────────────────────────────────────────────────────────────────

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
	// conflictOnce simula que otra petición creó la cuenta justo antes del Create.
	conflictOnce *entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{users: map[string]*entity.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflictOnce != nil {
		m.users[m.conflictOnce.ID] = m.conflictOnce
		m.conflictOnce = nil
		return domain.ErrConflict
	}
	for _, existing := range m.users {
		if existing.Email == u.Email || (u.GitHubID != "" && existing.GitHubID == u.GitHubID) {
			return domain.ErrConflict
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) find(match func(*entity.User) bool) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id }), nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email }), nil
}
func (m *memUsers) GetByGitHubID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.GitHubID == id }), nil
}
func (m *memUsers) LinkGitHub(_ context.Context, userID, githubID, avatar string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.GitHubID = githubID
	if avatar != "" {
		u.AvatarURL = avatar
	}
	return nil
}
func (m *memUsers) Update(context.Context, *entity.User) error { return nil }
func (m *memUsers) List(context.Context, repository.UserFilter) ([]*entity.User, int, error) {
	return nil, len(m.users), nil
}
func (m *memUsers) Delete(context.Context, string) error { return nil }

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type fakeProvider struct {
	profile *auth.FederatedProfile
	err     error
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://github.com/login/oauth/authorize?state=" + state
}
func (f *fakeProvider) FetchProfile(context.Context, string) (*auth.FederatedProfile, error) {
	return f.profile, f.err
}

type memStates struct{ m map[string]time.Time }

func (s *memStates) Save(_ context.Context, state string, ttl time.Duration) error {
	s.m[state] = time.Now().Add(ttl)
	return nil
}
func (s *memStates) Consume(_ context.Context, state string) (bool, error) {
	exp, ok := s.m[state]
	delete(s.m, state)
	return ok && time.Now().Before(exp), nil
}

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func adminUser(t *testing.T) *entity.User {
	return &entity.User{ID: "u-admin", Name: "Administrador", Email: "admin@rastreabilidade.com",
		PasswordHash: hashOf(t, "admin123"), Role: entity.RoleAdmin}
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas(t *testing.T) {
	users := newMemUsers(adminUser(t))
	uc := auth.NewAuthUseCase(users, jwtCfg, nil, nil, logger.Nop())

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@rastreabilidade.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "u-admin", out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	claims, err := uc.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-admin", claims.UserID)
	assert.Equal(t, "Administrador", claims.Name)
	assert.Equal(t, "admin@rastreabilidade.com", claims.Email)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	federatedOnly := &entity.User{ID: "u-gh", Name: "Octo", Email: "octo@example.com", Role: entity.RoleUser, GitHubID: "42"}
	users := newMemUsers(adminUser(t), federatedOnly)
	uc := auth.NewAuthUseCase(users, jwtCfg, nil, nil, logger.Nop())

	cases := map[string]dto.LoginRequest{
		"email desconocido":     {Email: "nadie@example.com", Password: "admin123"},
		"contraseña incorrecta": {Email: "admin@rastreabilidade.com", Password: "otra"},
		"cuenta sin contraseña": {Email: "octo@example.com", Password: ""},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

// ── Verify / Authorize ────────────────────────────────────────────────────────

func TestVerify_TokenInvalido(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), jwtCfg, nil, nil, logger.Nop())

	_, err := uc.Verify("no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	other, err := jwt.Generate("otro-secret", jwtCfg.Issuer, jwt.Identity{UserID: "x", Role: "admin"}, 60)
	require.NoError(t, err)
	_, err = uc.Verify(other)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	expired, err := jwt.Generate(jwtCfg.Secret, jwtCfg.Issuer, jwt.Identity{UserID: "x", Role: "admin"}, -5)
	require.NoError(t, err)
	_, err = uc.Verify(expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthorize(t *testing.T) {
	user := &jwt.Claims{Role: entity.RoleUser}
	admin := &jwt.Claims{Role: entity.RoleAdmin}

	assert.NoError(t, auth.Authorize(user))
	assert.NoError(t, auth.Authorize(admin, entity.RoleAdmin))
	assert.NoError(t, auth.Authorize(user, entity.RoleAdmin, entity.RoleUser))
	assert.ErrorIs(t, auth.Authorize(user, entity.RoleAdmin), domain.ErrForbidden)
	assert.ErrorIs(t, auth.Authorize(nil), domain.ErrUnauthorized)
}

// ── LoginFederated ────────────────────────────────────────────────────────────

func TestLoginFederated_CreaCuentaYEsIdempotente(t *testing.T) {
	users := newMemUsers()
	uc := auth.NewAuthUseCase(users, jwtCfg, nil, nil, logger.Nop())
	p := auth.FederatedProfile{ExternalID: "583231", Name: "The Octocat", Email: "octocat@github.com", AvatarURL: "https://avatars/octo"}

	first, err := uc.LoginFederated(context.Background(), p)
	require.NoError(t, err)
	second, err := uc.LoginFederated(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, users.count())
	assert.Equal(t, entity.RoleUser, first.User.Role)
	assert.False(t, first.User.HasPassword)
	assert.True(t, first.User.GitHub)
}

func TestLoginFederated_VinculaPorEmailSinTocarHash(t *testing.T) {
	admin := adminUser(t)
	originalHash := admin.PasswordHash
	users := newMemUsers(admin)
	uc := auth.NewAuthUseCase(users, jwtCfg, nil, nil, logger.Nop())

	out, err := uc.LoginFederated(context.Background(), auth.FederatedProfile{
		ExternalID: "777", Name: "Admin GH", Email: "admin@rastreabilidade.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-admin", out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role, "vincular no cambia el rol")

	stored, _ := users.GetByID(context.Background(), "u-admin")
	assert.Equal(t, "777", stored.GitHubID)
	assert.Equal(t, originalHash, stored.PasswordHash)
	assert.Equal(t, "Administrador", stored.Name)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "admin@rastreabilidade.com", Password: "admin123"})
	assert.NoError(t, err, "el login local sigue funcionando")
}

func TestLoginFederated_CarreraEnCreacionReleeLaCuenta(t *testing.T) {
	users := newMemUsers()
	users.conflictOnce = &entity.User{ID: "u-winner", Name: "Octo", Email: "octo@example.com", Role: entity.RoleUser, GitHubID: "42"}
	uc := auth.NewAuthUseCase(users, jwtCfg, nil, nil, logger.Nop())

	out, err := uc.LoginFederated(context.Background(), auth.FederatedProfile{ExternalID: "42", Email: "octo@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "u-winner", out.User.ID)
	assert.Equal(t, 1, users.count())
}

func TestLoginFederated_PerfilIncompleto(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), jwtCfg, nil, nil, logger.Nop())
	_, err := uc.LoginFederated(context.Background(), auth.FederatedProfile{ExternalID: "1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Handshake GitHub ──────────────────────────────────────────────────────────

func TestGitHub_SinConfigurar(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), jwtCfg, nil, nil, logger.Nop())

	_, err := uc.GitHubAuthURL(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestGitHub_FlujoCompleto(t *testing.T) {
	users := newMemUsers()
	states := &memStates{m: map[string]time.Time{}}
	provider := &fakeProvider{profile: &auth.FederatedProfile{ExternalID: "9", Name: "Ana", Email: "ana@example.com"}}
	uc := auth.NewAuthUseCase(users, jwtCfg, provider, states, logger.Nop())

	url, err := uc.GitHubAuthURL(context.Background())
	require.NoError(t, err)
	require.Len(t, states.m, 1)
	var state string
	for s := range states.m {
		state = s
	}
	assert.Contains(t, url, "state="+state)

	out, err := uc.GitHubCallback(context.Background(), state, "code-123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.User.Email)

	_, err = uc.GitHubCallback(context.Background(), state, "code-123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el state es de un solo uso")
}

func TestGitHubCallback_ErrorDelProveedor(t *testing.T) {
	states := &memStates{m: map[string]time.Time{"s1": time.Now().Add(time.Minute)}}
	provider := &fakeProvider{err: errors.New("bad_verification_code")}
	uc := auth.NewAuthUseCase(newMemUsers(), jwtCfg, provider, states, logger.Nop())

	_, err := uc.GitHubCallback(context.Background(), "s1", "code")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

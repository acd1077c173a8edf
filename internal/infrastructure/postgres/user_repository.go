package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, COALESCE(password_hash, ''), role, COALESCE(github_id, ''),
	COALESCE(avatar_url, ''), created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email o github_id duplicado -> ErrConflict.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, github_id, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, nullIfEmpty(user.PasswordHash), user.Role,
		nullIfEmpty(user.GitHubID), nullIfEmpty(user.AvatarURL), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByGitHubID obtiene un usuario por su identidad de GitHub.
func (r *UserRepo) GetByGitHubID(ctx context.Context, githubID string) (*entity.User, error) {
	return r.findOne(ctx, "get user by github id", `SELECT `+userColumns+` FROM users WHERE github_id = $1`, githubID)
}

// LinkGitHub guarda github_id y avatar (si viene) sin modificar el hash de contraseña.
func (r *UserRepo) LinkGitHub(ctx context.Context, userID, githubID, avatarURL string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE users SET github_id = $2, avatar_url = COALESCE($3, avatar_url), updated_at = now()
		WHERE id = $1`,
		userID, githubID, nullIfEmpty(avatarURL),
	)
	if err != nil {
		return translateWriteError("link github", err)
	}
	return requireAffected(tag, "link github")
}

// Update actualiza nombre, email, rol, avatar y hash.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5, avatar_url = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, nullIfEmpty(user.PasswordHash), user.Role,
		nullIfEmpty(user.AvatarURL), user.UpdatedAt,
	)
	if err != nil {
		return translateWriteError("update user", err)
	}
	return requireAffected(tag, "update user")
}

// List lista usuarios con filtro y total para paginación.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(name ILIKE ? OR email ILIKE ?)", "%"+f.Search+"%")
	}
	if f.Role != "" {
		w.add("role = ?", f.Role)
	}
	query := `SELECT ` + userColumns + `, COUNT(*) OVER() FROM users` + w.sql() + ` ORDER BY created_at DESC` + w.page(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.User
		total int
	)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.GitHubID,
			&u.AvatarURL, &u.CreatedAt, &u.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

// Delete elimina un usuario. Sus registros quedan con created_by en NULL.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateWriteError("delete user", err)
	}
	return requireAffected(tag, "delete user")
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.GitHubID,
		&u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

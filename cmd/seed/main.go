// seed crea los usuarios iniciales (admin y usuario operativo) si no existen.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL / DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Trazabilidad-api/pkg/config"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

type seedUser struct {
	name, email, password, role string
}

var users = []seedUser{
	{"Administrador", "admin@rastreabilidade.com", "admin123", entity.RoleAdmin},
	{"Usuario", "usuario@rastreabilidade.com", "usuario123", entity.RoleUser},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)
	for _, u := range users {
		existing, err := repo.GetByEmail(ctx, u.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("buscar usuario")
		}
		if existing != nil {
			log.Info().Str("email", u.email).Msg("usuario ya existe, se omite")
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		now := time.Now()
		if err := repo.Create(ctx, &entity.User{
			ID:           uuid.New().String(),
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("crear usuario")
		}
		log.Info().Str("email", u.email).Str("role", u.role).Msg("usuario creado")
	}
}

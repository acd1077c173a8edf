// Package redis guarda los state del login OAuth con GitHub.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
)

const statePrefix = "oauth:state:"

// NewClient inicializa el cliente y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// StateStore implementación sobre Redis: sirve con varias réplicas de la API.
type StateStore struct {
	rdb *goredis.Client
}

func NewStateStore(rdb *goredis.Client) *StateStore {
	return &StateStore{rdb: rdb}
}

var _ auth.StateStore = (*StateStore)(nil)

func (s *StateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	ok, err := s.rdb.SetNX(ctx, statePrefix+state, 1, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis set state: %w", err)
	}
	if !ok {
		return fmt.Errorf("state duplicado")
	}
	return nil
}

// Consume usa GETDEL: un state solo se acepta una vez.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.rdb.GetDel(ctx, statePrefix+state).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis getdel state: %w", err)
	}
	return true, nil
}

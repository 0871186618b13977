package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodcosta/shophub/internal/config"
	"github.com/rodcosta/shophub/internal/security"
)

// EnsureAdminUser seeds the bootstrap administrator. Admin accounts are only
// created here or through the admin-guarded endpoint, never by public signup.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, name, age, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
		uuid.NewString(), cfg.AdminName, nil, cfg.AdminEmail, hash, true, now, now,
	)

	return err
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodcosta/shophub/internal/domain/user"
	"github.com/rodcosta/shophub/internal/observability"
)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const userColumns = `id, name, age, email, password_hash, is_admin, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Age,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

// Create inserts a user and relies on the unique index on email; a 23505 is
// translated to user.ErrEmailTaken instead of a pre-insert existence check,
// so concurrent signups with the same email cannot both win.
func (r *UsersRepo) Create(ctx context.Context, req user.CreateRequest) (user.User, error) {
	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Age:          req.Age,
		Email:        req.Email,
		PasswordHash: req.Password,
		IsAdmin:      req.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.observe("users.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (id, name, age, email, password_hash, is_admin, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			u.ID, u.Name, u.Age, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt,
		)
		return err
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		var scanErr error
		u, scanErr = scanUser(r.pool.QueryRow(
			ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`,
			email,
		))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		var scanErr error
		u, scanErr = scanUser(r.pool.QueryRow(
			ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`,
			id,
		))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User

	err := r.observe("users.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]user.User, 0)

		for rows.Next() {
			u, err := scanUser(rows)

			if err != nil {
				return err
			}

			out = append(out, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Update applies only the provided fields. Callers must reject an empty
// update set before reaching the store.
func (r *UsersRepo) Update(ctx context.Context, id string, req user.UpdateRequest) (user.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	argsPosition := 2

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argsPosition))
		args = append(args, *req.Name)
		argsPosition++
	}

	if req.Email != nil {
		sets = append(sets, fmt.Sprintf("email = $%d", argsPosition))
		args = append(args, *req.Email)
		argsPosition++
	}

	if req.Age != nil {
		sets = append(sets, fmt.Sprintf("age = $%d", argsPosition))
		args = append(args, *req.Age)
		argsPosition++
	}

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + userColumns

	var u user.User

	err := r.observe("users.update", func() error {
		var scanErr error
		u, scanErr = scanUser(r.pool.QueryRow(ctx, query, args...))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		if IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

// Delete refuses to remove admin accounts at the store level as well, so the
// protection holds even if a handler forgets the check.
func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	return r.observe("users.delete", func() error {
		var isAdmin bool

		err := r.pool.QueryRow(ctx, `SELECT is_admin FROM users WHERE id = $1`, id).Scan(&isAdmin)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrNotFound
			}

			return err
		}

		if isAdmin {
			return user.ErrAdminProtected
		}

		tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1 AND is_admin = FALSE`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return user.ErrNotFound
		}

		return nil
	})
}

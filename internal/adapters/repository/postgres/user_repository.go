package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, name, phone, password, verified)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    phone = EXCLUDED.phone,
		    password = EXCLUDED.password,
		    verified = EXCLUDED.verified
	`
	_, err := r.db.ExecContext(ctx, query, user.Email, user.Name, user.Phone, user.Password, user.Verified)
	if err != nil {
		return fmt.Errorf("%w: failed to save user: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT email, name, phone, password, verified, created_at FROM users WHERE email = $1`
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.Email, &user.Name, &user.Phone, &user.Password, &user.Verified, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get user: %v", domain.ErrStoreUnavailable, err)
	}
	return user, nil
}

func (r *UserRepository) MarkVerifiedByPhone(ctx context.Context, phone string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET verified = TRUE WHERE phone = $1`, phone)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to mark users verified: %v", domain.ErrStoreUnavailable, err)
	}
	return res.RowsAffected()
}

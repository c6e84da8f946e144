package ports

import (
	"context"

	"github.com/digivote/api/internal/core/domain"
)

type UserRepository interface {
	// Save upserts the user record, unconditionally overwriting any
	// existing record with the same email.
	Save(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// MarkVerifiedByPhone flags every user sharing the phone as verified
	// and returns how many records were updated.
	MarkVerifiedByPhone(ctx context.Context, phone string) (int64, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	VerifyPhone(ctx context.Context, phone, code string) error
	// Login returns the voter id (the email) on success.
	Login(ctx context.Context, email, password string) (string, error)
}

package services

import (
	"context"
	"fmt"

	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
)

const (
	otpMailSubject = "Your OTP for Digital Voting"
	otpMailBody    = "Your OTP for Digital Voting App is: %s"
)

type AuthService struct {
	userRepo ports.UserRepository
	otp      ports.OtpRegistry
	notifier ports.Notifier
}

func NewAuthService(userRepo ports.UserRepository, otp ports.OtpRegistry, notifier ports.Notifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otp:      otp,
		notifier: notifier,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

// Register upserts the user unverified, issues a fresh code for the phone and
// mails it. Duplicate registrations overwrite the previous record, resetting
// the verified flag. A mail failure leaves the record in place but is
// reported as domain.ErrNotificationFailed.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) error {
	user := &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
		Verified: false,
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	code, err := s.otp.Issue(input.Phone)
	if err != nil {
		return fmt.Errorf("failed to issue otp: %w", err)
	}

	if err := s.notifier.Send(ctx, input.Email, otpMailSubject, fmt.Sprintf(otpMailBody, code)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return nil
}

// VerifyPhone checks the code first and only then touches the store, so an
// invalid code never reveals whether the phone is registered. Every account
// sharing the phone gets marked verified.
func (s *AuthService) VerifyPhone(ctx context.Context, phone, code string) error {
	if !s.otp.Verify(phone, code) {
		return domain.ErrInvalidOtp
	}

	updated, err := s.userRepo.MarkVerifiedByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to mark users verified: %w", err)
	}
	if updated == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}

	if user.Password != password {
		return "", domain.ErrInvalidCredentials
	}
	if !user.Verified {
		return "", domain.ErrNotVerified
	}

	return user.Email, nil
}

package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrNotVerified        = errors.New("phone number not verified")
	ErrInvalidOtp         = errors.New("invalid otp")
	ErrAlreadyVoted       = errors.New("voter has already voted")
	ErrDeadlinePassed     = errors.New("voting has ended")
	ErrNotificationFailed = errors.New("failed to send otp")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

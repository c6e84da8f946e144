package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digivote/api/internal/adapters/repository/memory"
	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (f *fakeNotifier) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeNotifier) lastCode(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	body := f.sent[len(f.sent)-1].body
	idx := strings.LastIndex(body, " ")
	require.Greater(t, idx, 0)
	return body[idx+1:]
}

func newAuthFixture() (*AuthService, *memory.Store, *fakeNotifier) {
	store := memory.NewStore()
	notifier := &fakeNotifier{}
	otp := NewOtpService(10 * time.Minute)
	return NewAuthService(store, otp, notifier), store, notifier
}

func registerInput(email, phone string) ports.RegisterInput {
	return ports.RegisterInput{Name: "Alice", Email: email, Phone: phone, Password: "pw"}
}

func TestRegisterStoresUserAndSendsCode(t *testing.T) {
	service, store, notifier := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, registerInput("a@x.com", "555-1")))

	user, err := store.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.Verified)

	code := notifier.lastCode(t)
	assert.Len(t, code, 6)
	assert.Equal(t, "a@x.com", notifier.sent[0].to)
}

func TestRegisterNotificationFailureKeepsRecord(t *testing.T) {
	service, store, notifier := newAuthFixture()
	notifier.fail = assert.AnError
	ctx := context.Background()

	err := service.Register(ctx, registerInput("a@x.com", "555-1"))
	require.ErrorIs(t, err, domain.ErrNotificationFailed)

	// The record was already written before the send failed.
	user, err := store.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
}

func TestRegisterOverwritesExistingRecord(t *testing.T) {
	service, store, notifier := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, registerInput("a@x.com", "555-1")))
	require.NoError(t, service.VerifyPhone(ctx, "555-1", notifier.lastCode(t)))

	// Re-registering resets the verified flag, last write wins.
	require.NoError(t, service.Register(ctx, registerInput("a@x.com", "555-2")))

	user, err := store.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.Verified)
	assert.Equal(t, "555-2", user.Phone)
}

func TestVerifyPhoneWrongCode(t *testing.T) {
	service, _, _ := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, registerInput("a@x.com", "555-1")))
	err := service.VerifyPhone(ctx, "555-1", "wrong!")
	assert.ErrorIs(t, err, domain.ErrInvalidOtp)
}

func TestVerifyPhoneNoMatchingUser(t *testing.T) {
	store := memory.NewStore()
	notifier := &fakeNotifier{}
	otp := NewOtpService(10 * time.Minute)
	service := NewAuthService(store, otp, notifier)

	code, err := otp.Issue("555-1")
	require.NoError(t, err)

	err = service.VerifyPhone(context.Background(), "555-1", code)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVerifyPhoneMarksAllAccountsSharingPhone(t *testing.T) {
	service, store, notifier := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, registerInput("a@x.com", "555-1")))
	require.NoError(t, service.Register(ctx, registerInput("b@x.com", "555-1")))

	require.NoError(t, service.VerifyPhone(ctx, "555-1", notifier.lastCode(t)))

	for _, email := range []string{"a@x.com", "b@x.com"} {
		user, err := store.GetByEmail(ctx, email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.True(t, user.Verified, "user %s should be verified", email)
	}
}

func TestLogin(t *testing.T) {
	service, _, notifier := newAuthFixture()
	ctx := context.Background()

	_, err := service.Login(ctx, "a@x.com", "pw")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, service.Register(ctx, registerInput("a@x.com", "555-1")))

	_, err = service.Login(ctx, "a@x.com", "pw")
	assert.ErrorIs(t, err, domain.ErrNotVerified)

	require.NoError(t, service.VerifyPhone(ctx, "555-1", notifier.lastCode(t)))

	_, err = service.Login(ctx, "a@x.com", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	uid, err := service.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", uid)
}

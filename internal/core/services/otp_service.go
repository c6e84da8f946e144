package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/digivote/api/internal/core/ports"
)

const otpLength = 6

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OtpService keeps pending verification codes in process memory, keyed by
// phone number. Entries expire after the configured TTL and are consumed on
// successful verification; a failed attempt leaves the entry in place.
type OtpService struct {
	mu    sync.Mutex
	codes map[string]otpEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewOtpService(ttl time.Duration) *OtpService {
	return &OtpService{
		codes: make(map[string]otpEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

var _ ports.OtpRegistry = (*OtpService)(nil)

func (s *OtpService) Issue(phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[phone] = otpEntry{code: code, expiresAt: s.now().Add(s.ttl)}
	return code, nil
}

func (s *OtpService) Verify(phone, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[phone]
	if !ok {
		return false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.codes, phone)
		return false
	}
	if entry.code != code {
		return false
	}

	delete(s.codes, phone)
	return true
}

// generateCode draws each of the six digits independently from crypto/rand.
func generateCode() (string, error) {
	var b strings.Builder
	for i := 0; i < otpLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String(), nil
}

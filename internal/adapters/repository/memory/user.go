package memory

import (
	"context"
	"time"

	"github.com/digivote/api/internal/core/domain"
)

func (s *Store) Save(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *user
	if existing, ok := s.users[u.Email]; ok {
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = time.Now()
	}
	s.users[u.Email] = u
	return nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) MarkVerifiedByPhone(_ context.Context, phone string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for email, u := range s.users {
		if u.Phone == phone {
			u.Verified = true
			s.users[email] = u
			updated++
		}
	}
	return updated, nil
}

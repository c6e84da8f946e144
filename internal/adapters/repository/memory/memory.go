// Package memory provides mutex-guarded in-memory implementations of the
// repository ports. The server uses them when no database is configured and
// the tests use them to exercise the services without external dependencies.
package memory

import (
	"context"
	"sync"

	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
)

var (
	_ ports.UserRepository = (*Store)(nil)
	_ ports.VoteRepository = (*Store)(nil)
)

type Store struct {
	mu    sync.Mutex
	users map[string]domain.User
	voted map[string]struct{}
	votes []domain.Vote
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]domain.User),
		voted: make(map[string]struct{}),
	}
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

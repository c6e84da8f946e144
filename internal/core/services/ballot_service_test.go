package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digivote/api/internal/adapters/repository/memory"
	"github.com/digivote/api/internal/core/domain"
)

func newBallotFixture(t *testing.T, window domain.VotingWindow, voters ...string) (*BallotService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, email := range voters {
		err := store.Save(context.Background(), &domain.User{
			Name: "Voter", Email: email, Phone: "555-1", Password: "pw", Verified: true,
		})
		require.NoError(t, err)
	}
	return NewBallotService(store, store, window), store
}

func TestCastVoteUnknownVoter(t *testing.T) {
	service, _ := newBallotFixture(t, domain.NewVotingWindow(time.Hour))

	err := service.CastVote(context.Background(), "nobody@x.com", "cand1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCastVoteAfterDeadline(t *testing.T) {
	window := domain.VotingWindow{Deadline: time.Now().Add(-time.Hour)}
	service, _ := newBallotFixture(t, window, "a@x.com")

	err := service.CastVote(context.Background(), "a@x.com", "cand1")
	assert.ErrorIs(t, err, domain.ErrDeadlinePassed)

	// Vote history makes no difference once the deadline is gone.
	err = service.CastVote(context.Background(), "a@x.com", "cand2")
	assert.ErrorIs(t, err, domain.ErrDeadlinePassed)
}

func TestCastVoteTwice(t *testing.T) {
	service, _ := newBallotFixture(t, domain.NewVotingWindow(time.Hour), "a@x.com")
	ctx := context.Background()

	require.NoError(t, service.CastVote(ctx, "a@x.com", "cand1"))

	err := service.CastVote(ctx, "a@x.com", "cand2")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	tally, err := service.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"cand1": 1}, tally)
}

func TestConcurrentCastVoteSingleSuccess(t *testing.T) {
	service, store := newBallotFixture(t, domain.NewVotingWindow(time.Hour), "a@x.com")
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- service.CastVote(ctx, "a@x.com", "cand1")
		}()
	}
	wg.Wait()
	close(errs)

	var successes, alreadyVoted int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, domain.ErrAlreadyVoted):
			alreadyVoted++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, alreadyVoted)

	tally, err := store.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tally["cand1"])
}

func TestTally(t *testing.T) {
	service, _ := newBallotFixture(t, domain.NewVotingWindow(time.Hour), "a@x.com", "b@x.com", "c@x.com")
	ctx := context.Background()

	tally, err := service.Tally(ctx)
	require.NoError(t, err)
	assert.Empty(t, tally)

	require.NoError(t, service.CastVote(ctx, "a@x.com", "A"))
	require.NoError(t, service.CastVote(ctx, "b@x.com", "A"))
	require.NoError(t, service.CastVote(ctx, "c@x.com", "B"))

	tally, err = service.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 2, "B": 1}, tally)
}

func TestTimeRemaining(t *testing.T) {
	service, _ := newBallotFixture(t, domain.VotingWindow{Deadline: time.Now().Add(90 * time.Second)})

	remaining := service.TimeRemaining()
	assert.Greater(t, remaining, int64(0))
	assert.LessOrEqual(t, remaining, int64(90))

	base := time.Now()
	service.now = func() time.Time { return base.Add(time.Hour) }
	assert.Equal(t, int64(0), service.TimeRemaining())
}

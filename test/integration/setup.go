package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	httphandler "github.com/digivote/api/internal/adapters/handler/http"
	pgrepo "github.com/digivote/api/internal/adapters/repository/postgres"
	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/services"
)

type capturingNotifier struct {
	mu    sync.Mutex
	codes map[string]string // email -> last issued code
}

func (n *capturingNotifier) Send(_ context.Context, to, _, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[to] = body[strings.LastIndex(body, " ")+1:]
	return nil
}

func (n *capturingNotifier) codeFor(t *testing.T, email string) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	code, ok := n.codes[email]
	require.True(t, ok, "no code captured for %s", email)
	return code
}

type testApp struct {
	Server    *httptest.Server
	DB        *sql.DB
	Notifier  *capturingNotifier
	container testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T, window domain.VotingWindow) *testApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, applyMigrations(db))

	notifier := &capturingNotifier{codes: make(map[string]string)}
	userRepo := pgrepo.NewUserRepository(db)
	voteRepo := pgrepo.NewVoteRepository(db)

	otpRegistry := services.NewOtpService(10 * time.Minute)
	authService := services.NewAuthService(userRepo, otpRegistry, notifier)
	ballotService := services.NewBallotService(userRepo, voteRepo, window)

	handler := httphandler.NewHandler(
		httphandler.NewAuthHandler(authService),
		httphandler.NewVoteHandler(ballotService),
		db.PingContext,
	)

	return &testApp{
		Server:    httptest.NewServer(handler),
		DB:        db,
		Notifier:  notifier,
		container: container,
	}
}

func (a *testApp) Teardown(t *testing.T) {
	t.Helper()
	a.Server.Close()
	require.NoError(t, a.DB.Close())
	require.NoError(t, a.container.Terminate(context.Background()))
}

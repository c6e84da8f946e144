package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"

	"github.com/digivote/api/internal/adapters/handler/http"
	"github.com/digivote/api/internal/adapters/notifier/smtp"
	"github.com/digivote/api/internal/adapters/repository/memory"
	"github.com/digivote/api/internal/adapters/repository/postgres"
	"github.com/digivote/api/internal/config"
	"github.com/digivote/api/internal/core/domain"
	"github.com/digivote/api/internal/core/ports"
	"github.com/digivote/api/internal/core/services"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, nil))

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found")
	}
	cfg := config.Load()

	var (
		userRepo ports.UserRepository
		voteRepo ports.VoteRepository
		ping     http.PingFunc
	)
	if cfg.Postgres.Configured() {
		db, err := sql.Open("postgres", cfg.Postgres.ConnString())
		if err != nil {
			logger.Error("failed to open database", "err", err)
			os.Exit(1)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			cancel()
			logger.Error("failed to reach database", "err", err)
			os.Exit(1)
		}
		cancel()

		userRepo = postgres.NewUserRepository(db)
		voteRepo = postgres.NewVoteRepository(db)
		ping = db.PingContext
	} else {
		logger.Warn("postgres not configured, using in-memory store")
		store := memory.NewStore()
		userRepo = store
		voteRepo = store
		ping = store.Ping
	}

	var notifier ports.Notifier
	if sender, err := smtp.NewSender(cfg.SMTP); err == nil {
		notifier = sender
	} else {
		logger.Warn("smtp not configured, logging mail instead", "reason", err)
		notifier = smtp.NewLogSender(logger)
	}

	otpRegistry := services.NewOtpService(cfg.OtpTTL)
	authService := services.NewAuthService(userRepo, otpRegistry, notifier)

	window := domain.NewVotingWindow(cfg.VotingWindow)
	ballotService := services.NewBallotService(userRepo, voteRepo, window)
	logger.Info("voting window open", "deadline", window.Deadline)

	handler := http.NewHandler(
		http.NewAuthHandler(authService),
		http.NewVoteHandler(ballotService),
		ping,
	)
	server := &stdhttp.Server{Addr: cfg.ListenAddr(), Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
}

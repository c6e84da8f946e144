// Package config assembles runtime configuration from the environment.
// Entrypoints call godotenv.Load first so a local .env file is picked up.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultVotingWindow is how long voting stays open after process
	// start. The deadline is not persisted; a restart resets the
	// countdown.
	DefaultVotingWindow = 48 * time.Hour
	// DefaultOtpTTL bounds how long an issued code stays valid.
	DefaultOtpTTL = 10 * time.Minute
)

type Config struct {
	Port         int
	Postgres     PostgresConfig
	SMTP         SMTPConfig
	VotingWindow time.Duration
	OtpTTL       time.Duration
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func Load() Config {
	cfg := Config{
		Port: 8080,
		Postgres: PostgresConfig{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DB:       os.Getenv("POSTGRES_DB"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     587,
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		VotingWindow: DefaultVotingWindow,
		OtpTTL:       DefaultOtpTTL,
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.Port = p
		}
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.SMTP.Port = p
		}
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	if v := os.Getenv("VOTING_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.VotingWindow = d
		}
	}
	if v := os.Getenv("OTP_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.OtpTTL = d
		}
	}

	return cfg
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (p PostgresConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.DB)
}

// Configured reports whether enough is set to reach a database at all.
func (p PostgresConfig) Configured() bool {
	return p.Host != ""
}

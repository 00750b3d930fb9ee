package session

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// postgresStore implements Store using PostgreSQL, for deployments where
// sessions must survive a portal restart.
type postgresStore struct {
	db     *sql.DB
	ttl    time.Duration
	logger *slog.Logger
}

// PostgresConfig holds postgres session store configuration
type PostgresConfig struct {
	DSN string
	TTL time.Duration
}

const createSessionsTable = `
	CREATE TABLE IF NOT EXISTS portal_sessions (
		id         TEXT PRIMARY KEY,
		token      TEXT NOT NULL DEFAULT '',
		flash      JSONB,
		expires_at TIMESTAMPTZ NOT NULL
	)`

// NewPostgresStore creates a postgres-backed session store with proper
// connection pooling.
func NewPostgresStore(cfg PostgresConfig, logger *slog.Logger) (Store, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createSessionsTable); err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	logger.Info("connected to postgres session store")

	return &postgresStore{
		db:     db,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func (s *postgresStore) Token(ctx context.Context, sessionID string) (string, error) {
	query := `
		SELECT token FROM portal_sessions
		WHERE id = $1 AND expires_at > now()`

	var token string
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&token)
	if err == sql.ErrNoRows {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session token: %w", err)
	}
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

func (s *postgresStore) SetToken(ctx context.Context, sessionID, token string) error {
	query := `
		INSERT INTO portal_sessions (id, token, expires_at)
		VALUES ($1, $2, now() + $3 * interval '1 second')
		ON CONFLICT (id) DO UPDATE
		SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`

	if _, err := s.db.ExecContext(ctx, query, sessionID, token, int64(s.ttl.Seconds())); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}

	s.reapExpired(ctx)
	return nil
}

func (s *postgresStore) Clear(ctx context.Context, sessionID string) error {
	query := `DELETE FROM portal_sessions WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *postgresStore) SetFlash(ctx context.Context, sessionID string, flash Flash) error {
	query := `
		INSERT INTO portal_sessions (id, flash, expires_at)
		VALUES ($1, jsonb_build_object('level', $2::text, 'message', $3::text),
			now() + $4 * interval '1 second')
		ON CONFLICT (id) DO UPDATE
		SET flash = EXCLUDED.flash`

	if _, err := s.db.ExecContext(ctx, query, sessionID, flash.Level, flash.Message, int64(s.ttl.Seconds())); err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}
	return nil
}

func (s *postgresStore) PopFlash(ctx context.Context, sessionID string) (*Flash, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var level, message sql.NullString
	err = tx.QueryRowContext(ctx, `
		SELECT flash->>'level', flash->>'message'
		FROM portal_sessions
		WHERE id = $1 AND flash IS NOT NULL
		FOR UPDATE`, sessionID).Scan(&level, &message)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read flash: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE portal_sessions SET flash = NULL WHERE id = $1`, sessionID); err != nil {
		return nil, fmt.Errorf("failed to consume flash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit flash pop: %w", err)
	}

	return &Flash{Level: level.String, Message: message.String}, nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

func (s *postgresStore) Close() error {
	s.logger.Info("closing postgres connection")
	return s.db.Close()
}

// reapExpired drops expired session rows. Best effort; failures are
// logged and ignored.
func (s *postgresStore) reapExpired(ctx context.Context) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM portal_sessions WHERE expires_at < now()`); err != nil {
		s.logger.Warn("failed to reap expired sessions", slog.String("error", err.Error()))
	}
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if cfg.MaxConns == 0 {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Create inserts a new session record.
func (s *PostgresStore) Create(ctx context.Context, r *Record) error {
	args := pgx.NamedArgs{
		"id":            r.ID,
		"access_token":  r.AccessToken,
		"refresh_token": r.RefreshToken,
		"token_type":    r.TokenType,
		"expires_at":    r.ExpiresAt,
		"status":        string(r.Status),
	}

	return s.pool.QueryRow(ctx, queryCreateSession, args).Scan(
		&r.CreatedAt, &r.UpdatedAt,
	)
}

// Get retrieves a session by id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	r := &Record{}
	err := s.pool.QueryRow(ctx, queryGetSession, id).Scan(
		&r.ID, &r.AccessToken, &r.RefreshToken, &r.TokenType,
		&r.ExpiresAt, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return r, nil
}

// Update overwrites the token fields and status of an existing session.
func (s *PostgresStore) Update(ctx context.Context, r *Record) error {
	args := pgx.NamedArgs{
		"id":            r.ID,
		"access_token":  r.AccessToken,
		"refresh_token": r.RefreshToken,
		"token_type":    r.TokenType,
		"expires_at":    r.ExpiresAt,
		"status":        string(r.Status),
	}

	tag, err := s.pool.Exec(ctx, queryUpdateSession, args)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session by id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, queryDeleteSession, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions whose tokens lapsed before cutoff.
func (s *PostgresStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, queryDeleteExpiredSessions, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ListExpiring returns authenticated sessions expiring before deadline that
// still hold a refresh token.
func (s *PostgresStore) ListExpiring(ctx context.Context, deadline time.Time) ([]Record, error) {
	rows, err := s.pool.Query(ctx, queryListExpiringSessions, deadline)
	if err != nil {
		return nil, fmt.Errorf("querying expiring sessions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID, &r.AccessToken, &r.RefreshToken, &r.TokenType,
			&r.ExpiresAt, &r.Status, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Count returns the number of authenticated sessions.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, queryCountSessions).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return count, nil
}

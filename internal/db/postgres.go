package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

const (
	BackendPostgres = "postgres"

	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// PGConn is the relational handle: a pooled connection with positional
// parameter binding.
type PGConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginFunc(ctx context.Context, f func(pgx.Tx) error) error
	Release()
}

// PGProvider hands out pooled PostgreSQL connections. A provider built from
// an empty URL is valid but every Acquire fails with a ConfigurationError.
type PGProvider struct {
	pool *pgxpool.Pool
}

func NewPGProvider(databaseURL string) (*PGProvider, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return &PGProvider{}, nil
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing DB_URL: %w", err)
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.LazyConnect = true

	pool, err := pgxpool.ConnectConfig(context.Background(), cfg)
	if err != nil {
		return nil, &ConnectivityError{Backend: BackendPostgres, Err: err}
	}
	return &PGProvider{pool: pool}, nil
}

func (p *PGProvider) Configured() bool { return p != nil && p.pool != nil }

func (p *PGProvider) Acquire(ctx context.Context) (PGConn, error) {
	if !p.Configured() {
		return nil, &ConfigurationError{Backend: BackendPostgres, Missing: []string{"DB_URL"}}
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, &ConnectivityError{Backend: BackendPostgres, Err: err}
	}
	return conn, nil
}

func (p *PGProvider) Ping(ctx context.Context) error {
	if !p.Configured() {
		return &ConfigurationError{Backend: BackendPostgres, Missing: []string{"DB_URL"}}
	}
	if err := p.pool.Ping(ctx); err != nil {
		return &ConnectivityError{Backend: BackendPostgres, Err: err}
	}
	return nil
}

// WaitUntilReady pings the database with exponential backoff.
func (p *PGProvider) WaitUntilReady(ctx context.Context) error {
	backoff := initialBackoff
	var err error
	for i := 1; i <= maxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		err = p.Ping(pingCtx)
		cancel()
		if err == nil {
			utils.Logger.Infof("Connected to PostgreSQL on attempt %d", i)
			return nil
		}

		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			return err
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)
		if i == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
}

// SQLDB opens a database/sql view over the pool's connection settings.
func (p *PGProvider) SQLDB() (*sql.DB, error) {
	if !p.Configured() {
		return nil, &ConfigurationError{Backend: BackendPostgres, Missing: []string{"DB_URL"}}
	}
	return stdlib.OpenDB(*p.pool.Config().ConnConfig), nil
}

func (p *PGProvider) Close() {
	if p.Configured() {
		p.pool.Close()
		utils.Logger.Info("PostgreSQL pool closed.")
	}
}

// FromPg classifies a driver error into the store error kinds. Errors it
// does not recognise are returned unchanged, pgx.ErrNoRows included.
func FromPg(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return &ValidationError{Status: http.StatusConflict, Field: pgErr.ColumnName, Message: pgErr.Detail}
		case strings.HasPrefix(pgErr.Code, "23"), strings.HasPrefix(pgErr.Code, "22"):
			msg := pgErr.Message
			if pgErr.Detail != "" {
				msg += ": " + pgErr.Detail
			}
			return &ValidationError{Status: http.StatusBadRequest, Field: pgErr.ColumnName, Message: msg}
		}
		return err
	}

	var netErr net.Error
	if pgconn.Timeout(err) || errors.As(err, &netErr) {
		return &ConnectivityError{Backend: BackendPostgres, Err: err}
	}
	return err
}

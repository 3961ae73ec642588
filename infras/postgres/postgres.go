package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"solireserve/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 10
	defaultConnLifetime = 30 * time.Minute
)

// Connection holds the replica pool used by lookups and the primary pool used by writes
// and transactions.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// DSN renders an endpoint as a postgres URL. The database name gets the configured prefix,
// credentials are escaped and extra is merged into the query string.
func DSN(cfg *config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(cfg *config.Config, name string, endpoint config.PostgresEndpoint) *sqlx.DB {
	pool := cfg.DB.Postgres
	maxRetry := max(pool.MaxRetry, 1)
	dsn := DSN(cfg, endpoint, nil)

	var err error

	for retry := range maxRetry {
		var db *sqlx.DB

		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			configurePool(db, pool.MaxOpenConns, pool.MaxIdleConns, pool.ConnMaxLifetime)

			log.Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("dbName", pool.Prefix+endpoint.Name).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Int("retry", retry+1).
			Int("maxRetry", maxRetry).
			Msg("Failed to connect to database, retrying")

		time.Sleep(time.Duration(pool.RetryWaitTime) * time.Second)
	}

	log.Fatal().Err(err).Str("name", name).Msg("Failed to connect to database")
	panic(err)
}

func configurePool(db *sqlx.DB, maxOpen, maxIdle, lifetimeSeconds int) {
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}

	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}

	lifetime := defaultConnLifetime
	if lifetimeSeconds > 0 {
		lifetime = time.Duration(lifetimeSeconds) * time.Second
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(maxIdle, maxOpen))
	db.SetConnMaxLifetime(lifetime)
}

// WithTransaction runs fn on the write pool, committing when it returns nil and rolling
// back otherwise.
func (c *Connection) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

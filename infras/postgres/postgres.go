package postgres

//nolint:revive
import (
	"backoffice/config"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName     = "postgres"
	maxIdleConns   = 4
	maxOpenConns   = 8
	connMaxIdleFor = 5 * time.Minute
)

// Role selects the read replica or the primary.
type Role string

const (
	RoleRead  Role = "read"
	RoleWrite Role = "write"
)

// Connection holds the activity log pools. Read and Write may share one handle.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	write := connect(cfg, RoleWrite)

	read := write
	if DSN(cfg, RoleRead, nil) != DSN(cfg, RoleWrite, nil) {
		read = connect(cfg, RoleRead)
	}

	return &Connection{
		Read:  read,
		Write: write,
	}
}

// NewFromDB wraps one handle for both roles, used with sqlmock in tests.
func NewFromDB(db *sqlx.DB) *Connection {
	return &Connection{
		Read:  db,
		Write: db,
	}
}

// DSN builds the connection URL for role; credentials are escaped since they end up in a URL.
// An unset read endpoint falls back to the write one.
func DSN(cfg *config.Config, role Role, extra url.Values) string {
	pg := cfg.DB.Postgres
	endpoint := pg.Write

	if role == RoleRead && pg.Read.Host != "" {
		endpoint = pg.Read
	}

	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + pg.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// connect retries MaxRetry times, RetryWaitTime seconds apart, then gives up for good.
func connect(cfg *config.Config, role Role) *sqlx.DB {
	pg := cfg.DB.Postgres
	attempts := max(pg.MaxRetry, 1)
	dsn := DSN(cfg, role, nil)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConns)
			db.SetMaxOpenConns(maxOpenConns)
			db.SetConnMaxIdleTime(connMaxIdleFor)

			log.Info().Str("role", string(role)).Msg("Connected to activity database")

			return db
		}

		log.Error().
			Err(err).
			Str("role", string(role)).
			Int("attempt", attempt).
			Msg("Failed connecting to activity database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("role", string(role)).Int("attempts", attempts).Msg("Giving up connecting to activity database")

	return nil
}

// Close releases both pools.
func (c *Connection) Close() error {
	if c.Write != nil && c.Write != c.Read {
		if err := c.Write.Close(); err != nil {
			return fmt.Errorf("failed to close write connection: %w", err)
		}
	}

	if c.Read != nil {
		if err := c.Read.Close(); err != nil {
			return fmt.Errorf("failed to close read connection: %w", err)
		}
	}

	return nil
}

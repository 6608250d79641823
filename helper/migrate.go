package helper

//nolint:revive
import (
	"backoffice/config"
	"backoffice/infras/postgres"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"

	migrationsSource = "file://migrations/postgres"
)

// connectionString is the primary's DSN with the migrations table override.
func connectionString(config *config.Config) string {
	extra := url.Values{}
	if config.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	return postgres.DSN(config, postgres.RoleWrite, extra)
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationsSource, connectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}

package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"solireserve/config"
	"solireserve/infras/postgres"
	"solireserve/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionStepUp  = "step-up"
	ActionDown    = "down"
	ActionDrop    = "drop"
	ActionForce   = "force"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

// migrateLogger forwards golang-migrate output to zerolog.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (migrateLogger) Verbose() bool {
	return false
}

// databaseURL points golang-migrate at the write pool, with its own history table when one
// is configured.
func databaseURL(cfg *config.Config) string {
	extra := url.Values{}
	if cfg.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	return postgres.DSN(cfg, cfg.DB.Postgres.Write, extra)
}

func newMigrate(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error reading embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	mig.Log = migrateLogger{}

	return mig, nil
}

// Run applies one action to the schema. arg is the version for ActionForce and is ignored
// otherwise. The resulting schema version is logged.
func Run(cfg *config.Config, action, arg string) error {
	apply, err := actionFunc(action, arg)
	if err != nil {
		return err
	}

	mig, err := newMigrate(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if sourceErr, dbErr := mig.Close(); sourceErr != nil || dbErr != nil {
			log.Warn().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("Failed to close migrate instance")
		}
	}()

	err = apply(mig)
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Str("action", action).Msg("Database schema already up to date")

		err = nil
	}

	if err != nil {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading schema version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database schema version")

	return nil
}

func actionFunc(action, arg string) (func(*migrate.Migrate) error, error) {
	switch action {
	case ActionUp:
		return (*migrate.Migrate).Up, nil
	case ActionStepUp:
		return func(m *migrate.Migrate) error { return m.Steps(1) }, nil
	case ActionDown:
		return func(m *migrate.Migrate) error { return m.Steps(-1) }, nil
	case ActionDrop:
		return (*migrate.Migrate).Down, nil
	case ActionVersion:
		return func(*migrate.Migrate) error { return nil }, nil
	case ActionForce:
		version, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("force needs a version number, got %q", arg)
		}

		return func(m *migrate.Migrate) error { return m.Force(version) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Up applies every pending migration; used at start-up when DB_POSTGRES_AUTO_MIGRATE is set.
func Up(cfg *config.Config) error {
	return Run(cfg, ActionUp, "")
}

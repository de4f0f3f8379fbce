package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/docit/pkg/cryptox"
	"github.com/aussiebroadwan/docit/pkg/jwtx"
	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	JWTSecret        string `env:"JWT_SECRET,required,unset"`         // Required: HS256 signing secret, at least 32 bytes
	MFAEncryptionKey string `env:"MFA_ENCRYPTION_KEY,required,unset"` // Required: 32 raw bytes or 64 hex chars

	Issuer            string        `env:"AUTH_ISSUER" envDefault:"Doc-IT"`           // Token issuer and TOTP issuer label
	TokenTTL          time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`           // Bearer token lifetime
	EnrollmentTTL     time.Duration `env:"AUTH_MFA_ENROLLMENT_TTL" envDefault:"10m"`  // Pending MFA enrollment lifetime
	RecoveryCodeCount int           `env:"AUTH_RECOVERY_CODE_COUNT" envDefault:"10"`  // Recovery codes issued per activation
	BcryptCost        int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`          // Password hashing cost
	DatabaseDriver    string        `env:"AUTH_DATABASE_DRIVER" envDefault:"sqlite"`  // sqlite or postgres
	DatabaseFile      string        `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`   // SQLite database path
	DatabaseDSN       string        `env:"AUTH_DATABASE_DSN"`                         // Postgres connection string
	CORSOrigins       []string      `env:"AUTH_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	Env                  string        `env:"ENV" envDefault:"dev"`                     // Environment (dev, staging, prod)
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`              // debug, info, warn, error
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`             // json, text
	Port                 int           `env:"PORT" envDefault:"3000"`                   // HTTP server port
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`   // Graceful shutdown timeout
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`    // Expired enrollment sweep interval
}

// LoadConfig reads the process environment and validates the result.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < jwtx.MinSecretSize {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", jwtx.MinSecretSize))
	}
	if _, err := cryptox.ParseSecretKey(c.MFAEncryptionKey); err != nil {
		errs = append(errs, fmt.Errorf("MFA_ENCRYPTION_KEY: %w", err))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_DSN is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_DATABASE_DRIVER %q is not supported", c.DatabaseDriver))
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.RecoveryCodeCount < 1 || c.RecoveryCodeCount > 100 {
		errs = append(errs, errors.New("AUTH_RECOVERY_CODE_COUNT must be between 1 and 100"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}
	if c.EnrollmentTTL <= 0 {
		errs = append(errs, errors.New("AUTH_MFA_ENROLLMENT_TTL must be positive"))
	}
	if c.HousekeepingInterval <= 0 {
		errs = append(errs, errors.New("HOUSEKEEPING_INTERVAL must be positive"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, errors.New("PORT must be between 1 and 65535"))
	}

	return errors.Join(errs...)
}

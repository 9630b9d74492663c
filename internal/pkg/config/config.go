package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/jobportal/jobboard/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Secret string `env:"SESSION_SECRET, required"`
	// TTL of zero keeps sessions until logout.
	TTL          time.Duration `env:"SESSION_TTL,   default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST, default=10"`
	// RegistrationRoles are the roles offered on the public sign-up form.
	RegistrationRoles []string `env:"REGISTRATION_ROLES, delimiter=;, default=jobseeker;employer;admin"`
}

type MongoConfig struct {
	URI                string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database           string `env:"MONGO_DB,            default=jobboard"`
	UniqueApplications bool   `env:"UNIQUE_APPLICATIONS, default=false"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.TTL < 0 {
		return errors.New("SESSION_TTL must not be negative")
	}
	if _, err := c.RegistrationRoles(); err != nil {
		return err
	}
	return nil
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// RegistrationRoles parses REGISTRATION_ROLES. An empty list is allowed and
// closes self-service registration.
func (c *Config) RegistrationRoles() ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(c.Auth.RegistrationRoles))
	for _, raw := range c.Auth.RegistrationRoles {
		if raw == "" {
			continue
		}
		role, err := domain.ParseRole(raw)
		if err != nil {
			return nil, fmt.Errorf("REGISTRATION_ROLES: %q: %w", raw, err)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

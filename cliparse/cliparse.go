package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/danielhkuo/quickly-gift/matcher"
)

const (
	DefaultPort    = 3318
	DefaultBaseURL = "https://quickly-gift.com"

	// MaxAttemptsCap bounds what a single generate request may ask for
	MaxAttemptsCap = 10000
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	DrawSlugSalt string
	IPHashSalt   string
	MaxAttempts  int
	BaseURL      string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-gift", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in share links")

	// Draw tuning
	fs.IntVar(&cfg.MaxAttempts, "attempts", 0, "Default retry budget per draw")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.DrawSlugSalt, "slug-salt", "", "Draw slug salt (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for client IP hashes in logs (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.MaxAttempts == 0 {
		if s := os.Getenv("MAX_ATTEMPTS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid MAX_ATTEMPTS env variable")
			}
			cfg.MaxAttempts = n
		} else {
			cfg.MaxAttempts = matcher.DefaultMaxAttempts
		}
	}
	if cfg.MaxAttempts < 1 || cfg.MaxAttempts > MaxAttemptsCap {
		return Config{}, errors.New("max attempts must be between 1 and " + strconv.Itoa(MaxAttemptsCap))
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultBaseURL
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.DrawSlugSalt == "" {
		cfg.DrawSlugSalt = os.Getenv("DRAW_SLUG_SALT")
	}
	if cfg.DrawSlugSalt == "" {
		return Config{}, errors.New("DRAW_SLUG_SALT required")
	}

	// Log hashes never share the admin key secret
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = cfg.DrawSlugSalt
	}

	return cfg, nil
}

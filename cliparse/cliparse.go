package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	NoAuthRequired bool
	BcryptCost     int
}

// ParseFlags validates flags and fills in defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("nbforms-server", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Auth behavior (prefer env variables, but allow CLI for dev)
	fs.BoolVar(&cfg.NoAuthRequired, "no-auth", false, "Disable credentialed login; /auth mints guest identities")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", 0, "bcrypt cost for password hashing (0 = library default)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		cfg.Port = env.Port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = env.DatabaseURL
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = env.DatabaseType
	}
	if !cfg.NoAuthRequired {
		cfg.NoAuthRequired = env.NoAuthRequired
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = env.BcryptCost
	}

	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	return cfg, nil
}

// FromEnv builds a Config from environment variables alone. The admin CLI
// uses this directly since its subcommands take no server flags.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:         5000,
		DatabaseType: "sqlite",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if dbType := os.Getenv("DATABASE_TYPE"); dbType != "" {
		cfg.DatabaseType = dbType
	}

	// The sqlite driver takes a plain file path, so a default exists for it
	if cfg.DatabaseURL == "" && cfg.DatabaseType == "sqlite" {
		cfg.DatabaseURL = "nbforms_server.db"
	}

	cfg.NoAuthRequired = os.Getenv("NO_AUTH_REQUIRED") == "true"

	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		cost, err := strconv.Atoi(costStr)
		if err != nil {
			return Config{}, errors.New("invalid BCRYPT_COST env variable")
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/keyring"
	"github.com/julianstephens/wishlog/internal/logger"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/storage/jsonfile"
	"github.com/julianstephens/wishlog/internal/storage/postgres"
	"github.com/julianstephens/wishlog/internal/storage/sqlite"
)

// IsPostgres reports whether config looks like a PostgreSQL URL or DSN
// rather than a file path.
func IsPostgres(config string) bool {
	return postgres.IsURL(config) || strings.Contains(config, "host=") || strings.Contains(config, "dbname=")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// OpenStore picks the backend for a --config value. Connection strings
// given on the command line must not carry a password.
func OpenStore(config string) (storage.Provider, error) {
	if IsPostgres(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store it with 'wishlog keyring set' or export %s instead", err, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandHome(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return jsonfile.NewStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// LookupConnection finds a PostgreSQL connection string in the environment
// or the OS keyring. These sources may hold credentials.
func LookupConnection() (string, bool) {
	if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
		return connStr, true
	}
	if !keyring.IsAvailable() {
		return "", false
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Failed to read connection string from keyring", "error", err)
		}
		return "", false
	}
	return connStr, true
}

// ResolveStore opens the store for config. When config is the default path,
// a connection string from the environment or keyring takes precedence.
func ResolveStore(config string) (storage.Provider, error) {
	if config == constants.DefaultConfigPath {
		if connStr, ok := LookupConnection(); ok {
			if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			logger.Debug("Using PostgreSQL connection from environment or keyring")
			return postgres.New(connStr), nil
		}
	}
	return OpenStore(config)
}

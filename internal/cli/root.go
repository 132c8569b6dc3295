package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/medimate/internal/backup"
	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/keyring"
	"github.com/julianstephens/medimate/internal/logger"
	"github.com/julianstephens/medimate/internal/storage"
	"github.com/julianstephens/medimate/internal/storage/postgres"
	"github.com/julianstephens/medimate/internal/storage/sqlite"
	"github.com/julianstephens/medimate/internal/tracker"
	"github.com/julianstephens/medimate/internal/utils"
)

// KeyringTarget selects the connection string stored in the OS keyring
const KeyringTarget = "keyring"

type Context struct {
	Store storage.Provider
	Meds  *tracker.MedStore
	Log   *tracker.AdherenceLog
	// DataDir holds logs, backups and the serve lockfile
	DataDir string
	Out     io.Writer
}

func NewContext(store storage.Provider, dataDir string) *Context {
	return &Context{
		Store:   store,
		Meds:    tracker.NewMedStore(store),
		Log:     tracker.NewAdherenceLog(store),
		DataDir: dataDir,
		Out:     os.Stdout,
	}
}

// IsSQLite reports whether the context is backed by a local database file
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup snapshots a SQLite database and only logs failures
func (c *Context) PerformAutomaticBackup(ctx context.Context) {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// IsPostgres reports whether target is a PostgreSQL URL
func IsPostgres(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// OpenStore picks the storage backend for target:
//   - "keyring": PostgreSQL, connection string read from the OS keyring
//   - a postgres:// URL: PostgreSQL, which must not embed a password
//   - target left at defaultTarget while envConn is set: PostgreSQL via envConn
//   - anything else: a SQLite file path
//
// An explicit --config always wins over envConn. The returned directory is
// where logs, backups and lockfiles belong.
func OpenStore(target, defaultTarget, envConn string) (storage.Provider, string, error) {
	switch {
	case target == KeyringTarget:
		connStr, err := keyring.ConnectionString().Get()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, "", fmt.Errorf("no connection string in keyring, store one with '%s keyring set'", constants.AppName)
			}
			return nil, "", err
		}
		return openPostgres(connStr)

	case IsPostgres(target):
		if _, err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("%w: store the full connection string with '%s keyring set', export %s, or use a .pgpass file",
					err, constants.AppName, "MEDIMATE_DB_CONNECTION")
			}
			return nil, "", err
		}
		return openPostgres(target)

	case envConn != "" && target == defaultTarget:
		return openPostgres(envConn)
	}

	path, err := utils.ExpandHome(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

// openPostgres accepts credentials that came from a secret source, so only
// the format is checked here
func openPostgres(connStr string) (storage.Provider, string, error) {
	if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return nil, "", err
	}

	dir, err := utils.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return postgres.New(connStr), dir, nil
}

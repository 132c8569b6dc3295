package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/medimate/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Secret addresses one entry in the OS keyring. The PostgreSQL connection
// string, password included, is kept here so it never has to appear on the
// command line or in a config file.
type Secret struct {
	Service string
	User    string
}

// ConnectionString is the entry holding the database connection string
func ConnectionString() Secret {
	return Secret{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

func (s Secret) Get() (string, error) {
	value, err := keyring.Get(s.Service, s.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func (s Secret) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(s.Service, s.User, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (s Secret) Delete() error {
	if err := keyring.Delete(s.Service, s.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available reports whether the keyring answers at all. A missing entry
// still counts as available.
func Available() bool {
	_, err := keyring.Get(constants.AppName, "availability-check")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

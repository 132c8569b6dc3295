// Package errors turns command failures into the single line printed on exit.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/keyring"
	"github.com/julianstephens/medimate/internal/logger"
	"github.com/julianstephens/medimate/internal/storage"
	"github.com/julianstephens/medimate/internal/validation"
)

// Format renders err for the terminal with an "Error: " prefix. Validation
// failures print only their message and known conditions get a hint on what
// to run next.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		return "Error: " + vErr.Message
	case errors.Is(err, storage.ErrNotInitialized):
		return fmt.Sprintf("Error: %v, run '%s init' first", err, constants.AppName)
	case errors.Is(err, keyring.ErrKeyringUnavailable):
		return fmt.Sprintf("Error: %v\nSet %s instead of using the keyring", err, "MEDIMATE_DB_CONNECTION")
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err and exits with code 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

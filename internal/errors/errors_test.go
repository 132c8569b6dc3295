package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/julianstephens/medimate/internal/keyring"
	"github.com/julianstephens/medimate/internal/storage"
	"github.com/julianstephens/medimate/internal/validation"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "plain",
			err:  errors.New("disk full"),
			want: "Error: disk full",
		},
		{
			name: "validation message only",
			err: fmt.Errorf("create: %w", &validation.Error{
				Rule:    validation.RuleRequired,
				Message: "Please fill in Name, Dose, and Schedule.",
			}),
			want: "Error: Please fill in Name, Dose, and Schedule.",
		},
		{
			name: "uninitialized store hints at init",
			err:  storage.ErrNotInitialized,
			want: "Error: storage not initialized, run 'medimate init' first",
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("take 7: %w", storage.ErrNotFound),
			want: "Error: take 7: medication not found",
		},
		{
			name: "keyring unavailable",
			err:  fmt.Errorf("%w: dbus closed", keyring.ErrKeyringUnavailable),
			want: fmt.Sprintf("Error: %v\nSet MEDIMATE_DB_CONNECTION instead of using the keyring",
				fmt.Errorf("%w: dbus closed", keyring.ErrKeyringUnavailable)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFatalNil(t *testing.T) {
	// Must return without exiting
	Fatal(nil)
}

// Package meds implements the medication management commands.
package meds

import "context"

func cmdContext() context.Context {
	return context.Background()
}

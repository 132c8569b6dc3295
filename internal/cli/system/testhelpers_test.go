package system

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store, dir)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

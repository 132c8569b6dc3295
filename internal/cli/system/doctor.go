package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/medimate/internal/backup"
	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/instance"
	"github.com/julianstephens/medimate/internal/utils"
)

type DoctorCmd struct{}

type diagnostic struct {
	name string
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	// warnOnly checks never fail the command
	warnOnly bool
	run      func(context.Context, *cli.Context) error
}

var diagnostics = []diagnostic{
	{name: "Schema complete", needsDB: true, run: checkSchemaComplete},
	{name: "Taken events integrity", needsDB: true, run: checkTakenEventsIntegrity},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Web server", warnOnly: true, run: checkServeInstance},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	dbReachable := false

	if err := checkDBReachable(bg, ctx); err != nil {
		fmt.Fprintf(ctx.Out, "❌ Database reachable: FAIL\n")
		fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(ctx.Out, "✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, d := range diagnostics {
		if d.needsDB && !dbReachable {
			fmt.Fprintf(ctx.Out, "⊘ %s: SKIPPED (database not reachable)\n", d.name)
			continue
		}

		err := d.run(bg, ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", d.name)
		case d.warnOnly:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n", d.name)
			fmt.Fprintf(ctx.Out, "   %v\n", err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n", d.name)
			fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Some checks failed. Please review the errors above.")
		return errors.New("diagnostics failed")
	}

	fmt.Fprintln(ctx.Out, "All critical checks passed!")
	return nil
}

func checkDBReachable(bg context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(bg); err != nil {
		return err
	}
	return ctx.Store.Ping(bg)
}

func checkSchemaComplete(bg context.Context, ctx *cli.Context) error {
	ok, err := ctx.Store.SchemaComplete(bg)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if !ok {
		return fmt.Errorf("pending migrations, run '%s init' to apply them", constants.AppName)
	}
	return nil
}

func checkTakenEventsIntegrity(bg context.Context, ctx *cli.Context) error {
	orphaned, err := ctx.Store.CountOrphanedTakenEvents(bg)
	if err != nil {
		return fmt.Errorf("failed to count orphaned taken events: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d taken event(s) referencing missing medications", orphaned)
	}
	return nil
}

func checkClockTimezone(_ context.Context, _ *cli.Context) error {
	now := utils.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	// Timestamps are stored without an offset, so they must survive a round trip in local time
	parsed, err := utils.ParseTimestamp(utils.FormatTimestamp(now))
	if err != nil {
		return fmt.Errorf("failed to round trip timestamp: %w", err)
	}
	if !parsed.Equal(now.Truncate(time.Second)) {
		return fmt.Errorf("local timezone %q does not round trip timestamps", time.Local.String())
	}
	return nil
}

func checkBackupsPresent(_ context.Context, ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return nil
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkServeInstance(_ context.Context, ctx *cli.Context) error {
	if lock, ok := instance.Running(ctx.DataDir); ok {
		return fmt.Errorf("web server already running at http://%s (pid %d)", lock.Addr, lock.PID)
	}
	return nil
}

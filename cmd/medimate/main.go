package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/medimate/internal/cli"
	"github.com/julianstephens/medimate/internal/cli/backups"
	"github.com/julianstephens/medimate/internal/cli/logs"
	"github.com/julianstephens/medimate/internal/cli/meds"
	"github.com/julianstephens/medimate/internal/cli/system"
	"github.com/julianstephens/medimate/internal/config"
	"github.com/julianstephens/medimate/internal/constants"
	apperrors "github.com/julianstephens/medimate/internal/errors"
	"github.com/julianstephens/medimate/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path, PostgreSQL connection string, or 'keyring'. PostgreSQL credentials must NOT be embedded in the connection string; use the OS keyring, MEDIMATE_DB_CONNECTION, or .pgpass instead." default:"${default_db}"`
	Debug   bool   `help:"Write debug logs to stderr." default:"${debug}"`
	EnvFile string `help:"Load environment variables from this file instead of ./.env." name:"env-file" type:"path"`

	Init   system.InitCmd   `cmd:"" help:"Initialize medimate storage."`
	Serve  system.ServeCmd  `cmd:"" help:"Run the web interface."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Med    struct {
		Add    meds.MedAddCmd    `cmd:"" help:"Add a medication."`
		Edit   meds.MedEditCmd   `cmd:"" help:"Edit a medication."`
		Delete meds.MedDeleteCmd `cmd:"" help:"Delete a medication and its history."`
		List   meds.MedListCmd   `cmd:"" help:"List medications." default:"1"`
	} `cmd:"" help:"Manage medications."`
	Take   logs.TakeCmd `cmd:"" help:"Mark medications as taken now."`
	Log    logs.LogCmd  `cmd:"" help:"Show recently taken doses."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability and the stored connection string."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

// commands that never touch the database
var storeless = map[string]bool{
	"keyring set":    true,
	"keyring delete": true,
	"keyring status": true,
}

// commands that open the store themselves
var selfLoading = map[string]bool{
	"init":   true,
	"doctor": true,
}

func main() {
	// The env file has to be read before flag defaults are resolved
	if err := config.LoadEnvFile(envFileArg(os.Args[1:])); err != nil {
		apperrors.Fatal(err)
	}
	cfg := config.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal medication tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"default_db": cfg.DB,
			"addr":       cfg.Addr,
			"debug":      fmt.Sprintf("%t", cfg.Debug),
		},
	)
	command := commandName(ctx.Command())

	if storeless[command] {
		initLogger(cfg, "", command)
		apperrors.Fatal(ctx.Run(&cli.Context{Out: os.Stdout}))
		return
	}

	store, dataDir, err := cli.OpenStore(CLI.Config, cfg.DB, cfg.DBConnection)
	if err != nil {
		apperrors.Fatal(err)
	}
	initLogger(cfg, dataDir, command)
	defer store.Close()

	if !selfLoading[command] {
		if err := store.Load(context.Background()); err != nil {
			store.Close()
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(cli.NewContext(store, dataDir)); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

func initLogger(cfg config.Config, dataDir, command string) {
	dir := cfg.LogDir
	if dir == "" {
		dir = dataDir
	}
	if dir == "" {
		return
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		Verbose:   command == "serve",
		ConfigDir: dir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", command, "version", constants.Version)
}

// commandName drops positional placeholders such as "<id>" from kong's
// command path
func commandName(path string) string {
	var parts []string
	for _, p := range strings.Fields(path) {
		if strings.HasPrefix(p, "<") {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// envFileArg finds --env-file ahead of kong so its values can feed defaults
func envFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return v
		}
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

package constants

import "time"

const (
	AppName            = "medimate"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/medimate/medimate.db"
	DefaultAddr        = "127.0.0.1:5000"
	Version            = "v0.3.0"

	// DateFormat is the calendar date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is the persisted timestamp format: ISO-8601, second
	// precision, local time, no offset
	TimestampFormat = "2006-01-02T15:04:05"

	// DisplayFormat is how timestamps are shown to the user
	DisplayFormat = "2006-01-02 15:04"

	// Medication field limits, in characters
	MaxNameLen     = 60
	MaxDoseLen     = 60
	MaxScheduleLen = 40

	// RecentLogLimit caps the rows returned by a history query
	RecentLogLimit = 250

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "medimate-"
	BackupFileSuffix = ".db"

	// Server constants
	ServeLockfileName   = "medimate-serve.lock"
	ServerReadTimeout   = 5 * time.Second
	ServerWriteTimeout  = 10 * time.Second
	ServerShutdownGrace = 5 * time.Second
	FlashCookieName     = "medimate_flash"
)

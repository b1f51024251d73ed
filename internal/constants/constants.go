package constants

const (
	AppName            = "wishlog"
	DefaultConfigPath  = "~/.config/wishlog/wishlog.db"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-token"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment variables
	EnvConfig       = "WISHLOG_CONFIG"
	EnvUser         = "WISHLOG_USER"
	EnvDBConnection = "WISHLOG_DB_CONNECTION"
	EnvTokenSecret  = "WISHLOG_TOKEN_SECRET"

	// Collections
	CollectionWishes   = "wishes"
	CollectionLogs     = "logs"
	CollectionSettings = "settings"

	// Wish field limits, counted in characters
	MaxWishTitleLen       = 20
	MaxWishDescriptionLen = 100

	// PoundsPerKilogram is the mass conversion factor (1 kg = 2.20462 lb)
	PoundsPerKilogram = 2.20462

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "wishlog-"
	BackupFileSuffix = ".db"

	// Token issuer for locally minted session tokens
	TokenIssuer = "wishlog"
)

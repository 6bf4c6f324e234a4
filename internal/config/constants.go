package config

// Default locations, relative to the working directory
const (
	// DefaultDataDir holds the three collection files
	DefaultDataDir = "./data"

	// DefaultLogDir holds the library and error logs
	DefaultLogDir = "./log"

	// DefaultAuditDatabasePath is the SQLite file backing the audit trail
	DefaultAuditDatabasePath = "./lms-audit.db"

	// DefaultBackupDir receives dataset snapshots
	DefaultBackupDir = "./backups"
)

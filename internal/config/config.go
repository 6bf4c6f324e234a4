package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Storage
		Logging
		Audit
		Backup
	}

	Storage struct {
		DataDir      string // Directory holding users.json, books.json and transactions.json
		AtomicWrites bool   // Write through a temp file + rename instead of truncating in place
	}
	Logging struct {
		Dir         string
		Level       string // debug, info, warn or error
		BackupCount int    // Rotated daily files kept per log
	}
	Audit struct {
		Enabled       bool
		DatabasePath  string
		RetentionDays int // Days to keep audit events (default: 30)
	}
	Backup struct {
		Dir string
	}
)

// loadDotEnv loads a .env file from the working directory if there is one.
// Values already present in the environment win.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("WARNING: could not load %s: %v", path, err)
	}
}

func NewConfig() *Config {
	loadDotEnv(".env")

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("storage_atomic_writes", false)

	v.SetDefault("log_dir", DefaultLogDir)
	v.SetDefault("log_level", "debug")
	v.SetDefault("log_backup_count", 5)

	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_database_path", DefaultAuditDatabasePath)
	v.SetDefault("audit_retention_days", 30)

	v.SetDefault("backup_dir", DefaultBackupDir)

	return &Config{
		Storage: Storage{
			DataDir:      v.GetString("DATA_DIR"),
			AtomicWrites: v.GetBool("STORAGE_ATOMIC_WRITES"),
		},
		Logging: Logging{
			Dir:         v.GetString("LOG_DIR"),
			Level:       v.GetString("LOG_LEVEL"),
			BackupCount: v.GetInt("LOG_BACKUP_COUNT"),
		},
		Audit: Audit{
			Enabled:       v.GetBool("AUDIT_ENABLED"),
			DatabasePath:  v.GetString("AUDIT_DATABASE_PATH"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Backup: Backup{
			Dir: v.GetString("BACKUP_DIR"),
		},
	}
}

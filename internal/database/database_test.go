package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarian/internal/entities"
)

func TestNewDatabase_MigratesAuditSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "audit.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.DB.Migrator().HasTable(&entities.AuditEvent{}))
	assert.True(t, db.DB.Migrator().HasTable("audit_events"))

	require.NoError(t, db.DB.Create(&entities.AuditEvent{Action: "book_add"}).Error)
	var count int64
	require.NoError(t, db.DB.Model(&entities.AuditEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewDatabase_ReopensExistingFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&entities.AuditEvent{Action: "checkout"}).Error)
	require.NoError(t, db.Close())

	db, err = NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var events []entities.AuditEvent
	require.NoError(t, db.DB.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "checkout", events[0].Action)
}

package audit

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/librarian/internal/database/audit"
	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo, logging.Discard())

	return svc, db
}

func TestService_Record(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EntityType:  entities.AuditEntityBook,
		EntityID:    "abcde",
		Action:      "book_add",
		Description: "Added book",
		Status:      entities.AuditStatusSuccess,
	}
	svc.Record(event)

	var saved entities.AuditEvent
	err := db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "book_add", saved.Action)
	assert.Equal(t, svc.Session(), saved.CorrelationID)
	assert.Len(t, svc.Session(), 36)
}

func TestService_Record_KeepsExplicitCorrelationID(t *testing.T) {
	svc, _ := setupTestService(t)

	event := &entities.AuditEvent{CorrelationID: "import-42", Action: "book_add"}
	require.NoError(t, svc.Log(event))
	assert.Equal(t, "import-42", event.CorrelationID)
}

func TestService_Record_SwallowsErrors(t *testing.T) {
	svc, db := setupTestService(t)
	require.NoError(t, db.Migrator().DropTable(&entities.AuditEvent{}))

	assert.NotPanics(t, func() {
		svc.Record(&entities.AuditEvent{Action: "book_add"})
	})
	assert.Error(t, svc.Log(&entities.AuditEvent{Action: "book_add"}))
}

func TestService_TruncatesDescription(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{Action: "book_add", Description: strings.Repeat("x", 600)}
	svc.Record(event)

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Len(t, saved.Description, 500)
	assert.True(t, strings.HasSuffix(saved.Description, "..."))
}

func TestService_TruncatesDescriptionOnRuneBoundary(t *testing.T) {
	svc, db := setupTestService(t)

	// The 497th byte falls inside a two-byte rune.
	event := &entities.AuditEvent{Action: "checkout", Description: "isbn: " + strings.Repeat("é", 300)}
	svc.Record(event)

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.True(t, utf8.ValidString(saved.Description))
	assert.Equal(t, "isbn: "+strings.Repeat("é", 245)+"...", saved.Description)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "abc", 10, "abc"},
		{"exact", "abcdefghij", 10, "abcdefghij"},
		{"ascii", "abcdefghijk", 10, "abcdefg..."},
		{"mid rune", "abcdef日本", 10, "abcdef..."},
		{"rune ends at cut", "abcd日本語", 10, "abcd日..."},
		{"on rune start", "abcdefg日本", 10, "abcdefg..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.max)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestService_GetEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.Record(&entities.AuditEvent{EntityType: entities.AuditEntityBook, Action: "book_add"})
	svc.Record(&entities.AuditEvent{EntityType: entities.AuditEntityMember, Action: "member_create"})
	svc.Record(&entities.AuditEvent{EntityType: entities.AuditEntityTransaction, Action: "checkout", MemberID: "1"})

	events, total, err := svc.GetEvents("", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, events, 3)

	events, total, err = svc.GetEvents(entities.AuditEntityMember, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "member_create", events[0].Action)

	events, _, err = svc.GetEventsForMember("1", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "checkout", events[0].Action)

	session, err := svc.SessionEvents()
	require.NoError(t, err)
	assert.Len(t, session, 3)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	now := time.Now()
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Log(&entities.AuditEvent{Action: "old", CreatedAt: now.Add(-40 * 24 * time.Hour)}))
	require.NoError(t, svc.Log(&entities.AuditEvent{Action: "recent", CreatedAt: now.Add(-time.Hour)}))

	deleted, err := svc.DeleteOldEvents(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, _, err := svc.GetEvents("", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "recent", events[0].Action)
}

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		input string
		want  entities.AuditEntityType
		ok    bool
	}{
		{"", "", true},
		{"book", entities.AuditEntityBook, true},
		{"member", entities.AuditEntityMember, true},
		{"transaction", entities.AuditEntityTransaction, true},
		{"dataset", entities.AuditEntityDataset, true},
		{"highlight", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseEntityType(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

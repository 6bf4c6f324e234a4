package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarian/internal/entities"
)

func TestBooks(t *testing.T) {
	var buf bytes.Buffer
	err := Books(&buf, []*entities.Book{
		{ISBN: "abcde", Title: "dune", Author: "frank herbert", Available: true},
		{ISBN: "fghijk", Title: "emma", Author: "jane austen", Available: false},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "isbn    title  author         available", lines[0])
	assert.Equal(t, "abcde   dune   frank herbert  true", lines[1])
	assert.Equal(t, "fghijk  emma   jane austen    false", lines[2])
}

func TestBooks_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Books(&buf, nil))
	assert.Equal(t, "No books.\n", buf.String())
}

func TestMembers(t *testing.T) {
	var buf bytes.Buffer
	err := Members(&buf, []*entities.Member{
		{ID: "1", Name: "alice", Email: "a@b.com", Borrowed: []string{"abcde", "fghij"}},
		{ID: "2", Name: "bob", Email: "bob@b.com"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "abcde, fghij")
	assert.Contains(t, out, "bob@b.com")
	assert.True(t, strings.HasPrefix(out, "id  name   email"))
}

func TestTransactions(t *testing.T) {
	var buf bytes.Buffer
	err := Transactions(&buf, []entities.Transaction{
		{MemberID: "1", ISBN: "abcde", Action: entities.ActionCheckout, Timestamp: "2024-03-01T10:30:00.123456"},
		{MemberID: "1", ISBN: "abcde", Action: entities.ActionCheckin, Timestamp: "2024-03-02T10:30:00.000000"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "checkout")
	assert.Contains(t, lines[2], "checkin")
}

func TestAuditEvents(t *testing.T) {
	var buf bytes.Buffer
	err := AuditEvents(&buf, []entities.AuditEvent{{
		EntityType:  entities.AuditEntityBook,
		EntityID:    "abcde",
		Action:      "book_add",
		Status:      entities.AuditStatusSuccess,
		Description: "Added book",
		CreatedAt:   time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2024-03-01 10:30:00  book  abcde   book_add  success  Added book")
}

package services

import "github.com/mrlokans/librarian/internal/entities"

// Store is the persistence side of the record store the services mutate.
// Services read and write the Dataset in place, then call Save.
type Store interface {
	Dataset() *entities.Dataset
	Save() error
	ValidatePresence() error
}

// Auditor records state changes and rejections. Failures to record are the
// auditor's own concern and never fail the operation.
type Auditor interface {
	Record(event *entities.AuditEvent)
}

// NopAuditor drops every event.
type NopAuditor struct{}

func (NopAuditor) Record(*entities.AuditEvent) {}

type BookField string

const (
	BookByISBN   BookField = "isbn"
	BookByTitle  BookField = "title"
	BookByAuthor BookField = "author"
)

type MemberField string

const (
	MemberByID    MemberField = "uid"
	MemberByName  MemberField = "name"
	MemberByEmail MemberField = "email"
)

package audit

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mrlokans/librarian/internal/database/audit"
	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
)

// Service records catalog changes. Every event from one process run carries
// the same correlation id.
type Service struct {
	repo    *audit.Repository
	log     logging.Logger
	session string
	now     func() time.Time
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, log logging.Logger) *Service {
	return &Service{
		repo:    repo,
		log:     log,
		session: uuid.New().String(),
		now:     time.Now,
	}
}

// Session returns the correlation id stamped on this run's events.
func (s *Service) Session() string {
	return s.session
}

// Log records an audit event and reports failure to the caller.
func (s *Service) Log(event *entities.AuditEvent) error {
	if event.CorrelationID == "" {
		event.CorrelationID = s.session
	}
	event.Description = truncate(event.Description, 500)
	return s.repo.LogEvent(event)
}

// Record logs an audit event; a failure is logged and otherwise ignored so
// the audit trail never blocks a catalog change.
func (s *Service) Record(event *entities.AuditEvent) {
	if err := s.Log(event); err != nil {
		s.log.Warn("Failed to log audit event", "action", event.Action, "entity", event.EntityID, "error", err)
	}
}

// GetEvents retrieves paginated audit events, optionally for one entity type.
func (s *Service) GetEvents(entityType entities.AuditEntityType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	if entityType == "" {
		return s.repo.GetEvents(limit, offset)
	}
	return s.repo.GetEventsByType(entityType, limit, offset)
}

// GetEventsForMember retrieves the transaction events of one member.
func (s *Service) GetEventsForMember(memberID string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsForMember(memberID, limit, offset)
}

// SessionEvents returns what this run has recorded so far.
func (s *Service) SessionEvents() ([]entities.AuditEvent, error) {
	return s.repo.GetSessionEvents(s.session)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)
	deleted, err := s.repo.DeleteOldEvents(cutoff)
	if err != nil {
		return 0, err
	}
	s.log.Info("Pruned audit events", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	return deleted, nil
}

// ParseEntityType accepts the entity types events are recorded under.
func ParseEntityType(s string) (entities.AuditEntityType, bool) {
	switch t := entities.AuditEntityType(s); t {
	case "", entities.AuditEntityBook, entities.AuditEntityMember, entities.AuditEntityTransaction, entities.AuditEntityDataset:
		return t, true
	}
	return "", false
}

// truncate shortens a string to max length.
// truncate shortens s to at most maxLen bytes, cutting on a rune boundary.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

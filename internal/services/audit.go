package services

import "github.com/mrlokans/librarian/internal/entities"

func auditEvent(entity entities.AuditEntityType, entityID, action string, status entities.AuditStatus, description string) *entities.AuditEvent {
	return &entities.AuditEvent{
		EntityType:  entity,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Status:      status,
	}
}

const (
	actionBookAdd      = "book_add"
	actionBookUpdate   = "book_update"
	actionBookDelete   = "book_delete"
	actionMemberCreate = "member_create"
	actionMemberUpdate = "member_update"
	actionMemberDelete = "member_delete"
)

const msgValidationFailed = "input failed validation"

package entities

import "time"

type AuditEntityType string

const (
	AuditEntityBook        AuditEntityType = "book"
	AuditEntityMember      AuditEntityType = "member"
	AuditEntityTransaction AuditEntityType = "transaction"
	AuditEntityDataset     AuditEntityType = "dataset"
)

type AuditStatus string

const (
	AuditStatusSuccess  AuditStatus = "success"
	AuditStatusRejected AuditStatus = "rejected"
)

type AuditEvent struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CorrelationID string          `gorm:"size:36;index" json:"correlation_id"`
	EntityType    AuditEntityType `gorm:"index;size:20" json:"entity_type"`
	EntityID      string          `gorm:"index;size:100" json:"entity_id"` // ISBN or member id
	Action        string          `gorm:"size:50" json:"action"`           // e.g., "book_add", "checkout"
	Description   string          `gorm:"size:500" json:"description"`     // Human-readable summary
	MemberID      string          `gorm:"index;size:100" json:"member_id,omitempty"`
	Status        AuditStatus     `gorm:"size:20" json:"status"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

package outbox

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusPending    = "pending"
	StatusPublishing = "publishing"
	StatusPublished  = "published"
	StatusFailed     = "failed"
)

// IntegrationEventLog is the transactional outbox row for one domain event.
// Rows are written in the same transaction as the aggregate mutation that
// raised the event and published after commit, at least once, never before.
type IntegrationEventLog struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EventType     string         `gorm:"column:event_type;not null;index" json:"event_type"`
	AggregateType string         `gorm:"column:aggregate_type;not null;index" json:"aggregate_type"`
	AggregateID   uuid.UUID      `gorm:"type:uuid;column:aggregate_id;not null;index" json:"aggregate_id"`
	Payload       datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	Status        string         `gorm:"column:status;not null;index" json:"status"`
	Attempts      int            `gorm:"column:attempts;not null;default:0" json:"attempts"`
	Error         string         `gorm:"column:error" json:"error,omitempty"`
	PublishedAt   *time.Time     `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;index" json:"updated_at"`
}

func (IntegrationEventLog) TableName() string { return "integration_event_log" }

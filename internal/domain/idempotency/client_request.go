package idempotency

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ClientRequest marks a client-supplied command identifier as processed.
// The row is created inside the same transaction as the aggregate mutation
// it guards; the primary key closes the race between concurrent retries.
// Rows are immutable; retention is a policy decision (see the janitor).
type ClientRequest struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null;index" json:"name"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
}

func (ClientRequest) TableName() string { return "client_requests" }

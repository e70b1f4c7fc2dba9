package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InvoiceAuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID string    `gorm:"index"`
	Action    string
	Details   datatypes.JSON
	CreatedAt time.Time
}

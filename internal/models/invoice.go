package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    string    `gorm:"index"`
	AmountInCents int64     `gorm:"column:amount_in_cents"`
	Status        string    `gorm:"index"`
	Date          datatypes.Date
	CreatedAt     time.Time
}

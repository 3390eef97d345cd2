package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one assistant exchange. Append-only, never mutated.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID string    `gorm:"column:session_id;not null"`
	Message   string    `gorm:"column:message;not null"`
	Response  string    `gorm:"column:response;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

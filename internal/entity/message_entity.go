package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultMessageType = "general"

type OrderItemMessage struct {
	Id          uuid.UUID
	OrderItemId uuid.UUID
	AuthorId    uuid.UUID
	AuthorRole  UserRole
	AuthorEmail string
	Message     string
	MessageType string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

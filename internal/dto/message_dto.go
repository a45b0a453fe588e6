package dto

import (
	"time"

	"github.com/google/uuid"
)

type PostMessageRequest struct {
	Message     string `json:"message" validate:"required"`
	MessageType string `json:"message_type"`
}

type MessageResponse struct {
	Id          uuid.UUID  `json:"id"`
	OrderItemId uuid.UUID  `json:"order_item_id"`
	AuthorId    uuid.UUID  `json:"author_id"`
	AuthorRole  string     `json:"author_role"`
	AuthorEmail string     `json:"author_email,omitempty"`
	Message     string     `json:"message"`
	MessageType string     `json:"message_type"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	BusinessName string
	PlaceId      *string
	PlaceUrl     *string
	Contact      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CustomerKeyword struct {
	Id         uuid.UUID
	CustomerId uuid.UUID
	Keyword    string
	CreatedAt  time.Time
}

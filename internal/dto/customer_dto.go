package dto

import (
	"time"

	"github.com/google/uuid"
)

type CustomerRequest struct {
	BusinessName string  `json:"business_name" validate:"required"`
	PlaceId      *string `json:"place_id"`
	PlaceUrl     *string `json:"place_url" validate:"omitempty,url"`
	Contact      *string `json:"contact"`
}

type CustomerResponse struct {
	Id           uuid.UUID         `json:"id"`
	BusinessName string            `json:"business_name"`
	PlaceId      *string           `json:"place_id,omitempty"`
	PlaceUrl     *string           `json:"place_url,omitempty"`
	Contact      *string           `json:"contact,omitempty"`
	Keywords     []KeywordResponse `json:"keywords,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type KeywordResponse struct {
	Id        uuid.UUID `json:"id"`
	Keyword   string    `json:"keyword"`
	CreatedAt time.Time `json:"created_at"`
}

type AddKeywordsRequest struct {
	Keywords []string `json:"keywords" validate:"required,min=1"`
}

type AddKeywordsResponse struct {
	Added      []KeywordResponse `json:"added"`
	Duplicates []string          `json:"duplicates"`
}

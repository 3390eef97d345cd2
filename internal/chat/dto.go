package chat

import (
	"time"

	"github.com/google/uuid"
)

// AskInput is one storefront assistant question.
type AskInput struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// AskResult is the assistant's reply. Fallback marks a canned response that
// went out because the provider call failed.
type AskResult struct {
	Response string `json:"response"`
	Fallback bool   `json:"fallback"`
}

// ExchangeDTO is one logged question/answer pair.
type ExchangeDTO struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

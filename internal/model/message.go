package model

import (
	"github.com/google/uuid"
)

// ChatMessage is one direct message inside a two-party conversation.
// Messages are append-only.
type ChatMessage struct {
	Base
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	SenderID       uuid.UUID `db:"sender_id" json:"sender_id"`
	RecipientID    uuid.UUID `db:"recipient_id" json:"recipient_id"`
	Text           string    `db:"text" json:"text"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

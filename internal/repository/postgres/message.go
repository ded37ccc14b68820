package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, conversation_id, sender_id, recipient_id, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = msg.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.ConversationID,
		msg.SenderID,
		msg.RecipientID,
		msg.Text,
		msg.CreatedAt,
		msg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

// ListWindow returns at most limit messages newest first, optionally
// only those older than before. Full-history reads are not offered.
func (r *messageRepository) ListWindow(ctx context.Context, conversationID string, limit int, before *time.Time) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	if before != nil {
		query := `
			SELECT * FROM chat_messages
			WHERE conversation_id = $1 AND created_at < $2
			ORDER BY created_at DESC
			LIMIT $3
		`
		err := r.db.SelectContext(ctx, &messages, query, conversationID, *before, limit)
		return messages, err
	}

	query := `
		SELECT * FROM chat_messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	err := r.db.SelectContext(ctx, &messages, query, conversationID, limit)
	return messages, err
}

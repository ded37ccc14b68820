package chat

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/repository"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
	"github.com/glucocare/glucocare-api/pkg/messaging"
	"github.com/glucocare/glucocare-api/pkg/metrics"
)

const channelPrefix = "chat."

// ConversationID derives the canonical conversation identifier for two
// participants: their ids sorted lexicographically and joined. Both
// sides compute the same id regardless of who opens the chat first.
func ConversationID(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	if ids[1] < ids[0] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return strings.Join(ids, "_")
}

// Channel is the broker channel carrying a conversation's messages.
func Channel(conversationID string) string {
	return channelPrefix + conversationID
}

type Service struct {
	repo     repository.MessageRepository
	userRepo repository.UserRepository
	broker   messaging.Broker
	metrics  *metrics.Metrics
}

func NewService(repo repository.MessageRepository, userRepo repository.UserRepository,
	broker messaging.Broker, metrics *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		broker:   broker,
		metrics:  metrics,
	}
}

// Send stores the message and publishes it on the conversation channel
// so open streams see it immediately.
func (s *Service) Send(ctx context.Context, senderID uuid.UUID, senderRole model.Role, recipientID uuid.UUID, text string) (*model.ChatMessage, error) {
	if senderID == recipientID {
		return nil, apperrors.BadRequest("cannot message yourself", nil)
	}

	recipient, err := s.userRepo.Get(ctx, recipientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("recipient", err)
		}
		return nil, apperrors.Internal(err)
	}

	// Chat crosses roles: patients talk to doctors and vice versa.
	if recipient.Role == senderRole {
		return nil, apperrors.Forbidden("cannot message a user with the same role", nil)
	}

	msg := &model.ChatMessage{
		Base: model.Base{
			ID: uuid.New(),
		},
		ConversationID: ConversationID(senderID, recipientID),
		SenderID:       senderID,
		RecipientID:    recipientID,
		Text:           text,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.broker.Publish(ctx, Channel(msg.ConversationID), msg); err != nil {
		// The message is stored; streams catch up on their next
		// history fetch.
		return msg, nil
	}
	s.metrics.ChatMessagesSent.Inc()

	return msg, nil
}

// History returns a bounded window of the conversation between userID
// and peerID, newest first.
func (s *Service) History(ctx context.Context, userID, peerID uuid.UUID, limit int, before *time.Time) ([]*model.ChatMessage, error) {
	w := model.Window{Limit: limit, Before: before}
	w.Clamp()

	messages, err := s.repo.ListWindow(ctx, ConversationID(userID, peerID), w.Limit, w.Before)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return messages, nil
}

// Stream subscribes to the live tail of the conversation. The channel
// closes when ctx is cancelled.
func (s *Service) Stream(ctx context.Context, userID, peerID uuid.UUID) (<-chan []byte, error) {
	ch, err := s.broker.Subscribe(ctx, Channel(ConversationID(userID, peerID)))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return ch, nil
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bee-edu/askbee/internal/core"
	"github.com/bee-edu/askbee/internal/models"
)

// HistoryLimit caps how much chat history a listing returns.
const HistoryLimit = 100

// ChatService is the chat log store: per-user question/answer/error records,
// immutable once written.
type ChatService struct {
	db core.DbClient
}

func NewChatService(db core.DbClient) *ChatService {
	return &ChatService{db: db}
}

// Append records one exchange. Answer and errText may both be empty; no
// validation beyond requiring an owner.
func (s *ChatService) Append(ctx context.Context, userID, question, answer, errText string) error {
	if userID == "" {
		return errors.New("missing user id")
	}
	rec := &models.ChatRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		Error:     errText,
		CreatedAt: time.Now().UTC(),
	}
	return s.db.AppendChat(ctx, rec)
}

// ListRecent returns up to HistoryLimit of the user's most recent records,
// oldest first.
func (s *ChatService) ListRecent(ctx context.Context, userID string) ([]models.ChatRecord, error) {
	return s.db.ListRecentChats(ctx, userID, HistoryLimit)
}

package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/bee-edu/askbee/internal/api/middlewares"
	"github.com/bee-edu/askbee/internal/api/respond"
	"github.com/bee-edu/askbee/internal/core"
	"github.com/bee-edu/askbee/internal/models"
)

// ChatLog is the slice of the chat service the handlers use.
type ChatLog interface {
	Append(ctx context.Context, userID, question, answer, errText string) error
	ListRecent(ctx context.Context, userID string) ([]models.ChatRecord, error)
}

type ChatHandler struct {
	chats    ChatLog
	answerer core.Answerer
}

func NewChatHandler(chats ChatLog, answerer core.Answerer) *ChatHandler {
	return &ChatHandler{chats: chats, answerer: answerer}
}

type saveChatRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Error    string `json:"error"`
}

// SaveChat appends a client-reported exchange to the caller's history.
func (h *ChatHandler) SaveChat(w http.ResponseWriter, r *http.Request) {
	id, ok := middlewares.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req saveChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid body")
		return
	}

	if err := h.chats.Append(r.Context(), id.UserID, req.Question, req.Answer, req.Error); err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type chatView struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Error     string `json:"error"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ListChats returns the caller's history, oldest first.
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	id, ok := middlewares.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	records, err := h.chats.ListRecent(r.Context(), id.UserID)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	views := make([]chatView, 0, len(records))
	for _, rec := range records {
		v := chatView{Question: rec.Question, Answer: rec.Answer, Error: rec.Error}
		if !rec.CreatedAt.IsZero() {
			v.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
		}
		views = append(views, v)
	}
	respond.JSON(w, http.StatusOK, map[string][]chatView{"chats": views})
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask answers a question through the RAG delegate. The endpoint is public;
// when a valid bearer token accompanies the request, the exchange (answer or
// failure) is also recorded in that user's history.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid body")
		return
	}

	answer, err := h.answerer.Answer(r.Context(), req.Question)

	if id, ok := middlewares.IdentityFrom(r.Context()); ok {
		errText := ""
		if err != nil {
			errText = err.Error()
		}
		// History is best effort here; the answer still goes out.
		if saveErr := h.chats.Append(r.Context(), id.UserID, req.Question, answer, errText); saveErr != nil {
			log.Printf("save chat for %s: %v", id.UserID, saveErr)
		}
	}

	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"answer": answer})
}

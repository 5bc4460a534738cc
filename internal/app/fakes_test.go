package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bee-edu/askbee/internal/core"
	"github.com/bee-edu/askbee/internal/models"
)

// fakeDB is an in-memory core.DbClient used to drive the router without
// Postgres.
type fakeDB struct {
	mu    sync.Mutex
	users map[string]models.User
	chats []models.ChatRecord
	down  bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[string]models.User)}
}

func (f *fakeDB) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return fmt.Errorf("%w: connection refused", core.ErrUnavailable)
	}
	if _, exists := f.users[user.Email]; exists {
		return fmt.Errorf("%w: users_email_key", core.ErrConflict)
	}
	f.users[user.Email] = *user
	return nil
}

func (f *fakeDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, fmt.Errorf("%w: connection refused", core.ErrUnavailable)
	}
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeDB) AppendChat(ctx context.Context, rec *models.ChatRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return fmt.Errorf("%w: connection refused", core.ErrUnavailable)
	}
	f.chats = append(f.chats, *rec)
	return nil
}

func (f *fakeDB) ListRecentChats(ctx context.Context, userID string, limit int) ([]models.ChatRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, fmt.Errorf("%w: connection refused", core.ErrUnavailable)
	}
	var out []models.ChatRecord
	for _, rec := range f.chats {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeDB) CreateCorpusDocument(ctx context.Context, doc *models.CorpusDocument) error {
	return nil
}

func (f *fakeDB) InsertCorpusChunks(ctx context.Context, chunks []models.CorpusChunk) error {
	return nil
}

func (f *fakeDB) SearchCorpusChunks(ctx context.Context, queryVec []float32, limit int) ([]models.CorpusChunk, error) {
	return nil, nil
}

func (f *fakeDB) Ping(ctx context.Context) error {
	if f.down {
		return fmt.Errorf("%w: connection refused", core.ErrUnavailable)
	}
	return nil
}

func (f *fakeDB) Close() error { return nil }

var _ core.DbClient = (*fakeDB)(nil)

// fakeAnswerer stands in for the RAG delegate.
type fakeAnswerer struct {
	answer string
	fail   bool
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("%w: %v", core.ErrDelegate, errors.New("index not built"))
	}
	return f.answer, nil
}

var _ core.Answerer = (*fakeAnswerer)(nil)

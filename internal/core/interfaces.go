package core

import (
	"context"
	"io"

	"github.com/bee-edu/askbee/internal/models"
)

// DbClient defines all persistence operations the services need.
// It abstracts Postgres/pgvector so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	AppendChat(ctx context.Context, rec *models.ChatRecord) error
	ListRecentChats(ctx context.Context, userID string, limit int) ([]models.ChatRecord, error)

	CreateCorpusDocument(ctx context.Context, doc *models.CorpusDocument) error
	InsertCorpusChunks(ctx context.Context, chunks []models.CorpusChunk) error
	SearchCorpusChunks(ctx context.Context, queryVec []float32, limit int) ([]models.CorpusChunk, error)

	Ping(ctx context.Context) error
	Close() error
}

type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// Answerer is the question-answering delegate. Internals (retrieval,
// prompting, generation) are opaque to callers; any failure surfaces as a
// single error wrapping ErrDelegate.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// ObjectClient defines interactions with S3 or any object storage.
type ObjectClient interface {
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
	GetObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}

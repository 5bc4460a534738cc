package models

import (
	"time"
)

// User represents an authenticated user of the system.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ChatRecord is one question/answer exchange saved for a user. Answer and
// Error may each be empty; nothing enforces a relation between them.
type ChatRecord struct {
	ID        string    `db:"id" json:"-"`
	UserID    string    `db:"user_id" json:"-"`
	Question  string    `db:"question" json:"question"`
	Answer    string    `db:"answer" json:"answer"`
	Error     string    `db:"error" json:"error"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// CorpusDocument is a piece of reference material ingested into the
// retrieval index.
type CorpusDocument struct {
	ID        string    `db:"id" json:"id"`
	Source    string    `db:"source" json:"source"` // s3 key or local path
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CorpusChunk is one embedded text chunk of a corpus document.
type CorpusChunk struct {
	ID         string    `db:"id" json:"id"`
	DocumentID string    `db:"document_id" json:"document_id"`
	Position   int       `db:"position" json:"position"`
	Text       string    `db:"text" json:"text"`
	Embedding  []float32 `db:"embedding" json:"-"` // pgvector column
	TokenCount int       `db:"token_count" json:"token_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bee-edu/askbee/internal/core"
	"github.com/bee-edu/askbee/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

// NewDatabaseClient opens the first reachable connection string, verifies it
// with a ping, and bootstraps the schema with embedDim as the vector column
// width. urls are tried in order so a fallback DSN can cover networks where
// the primary does not resolve.
func NewDatabaseClient(ctx context.Context, urls []string, embedDim int) (core.DbClient, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no database URL configured")
	}

	var lastErr error
	for _, dsn := range urls {
		db, err := open(ctx, dsn)
		if err != nil {
			lastErr = err
			continue
		}
		if err := EnsureBootstrapped(ctx, db, embedDim); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		return &DatabaseClient{db: db}, nil
	}
	return nil, fmt.Errorf("no database reachable: %w", lastErr)
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

func (c *DatabaseClient) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}
	return nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// mapWriteErr translates driver errors into the domain taxonomy. A unique
// violation is a conflict; anything else counts as the store being
// unavailable, which is all callers need to distinguish.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", core.ErrConflict, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %v", core.ErrUnavailable, err)
}

// Users

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	return mapWriteErr(err)
}

func (c *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, email, password_hash, created_at
		FROM users WHERE email = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}
	return &u, nil
}

// Chats

func (c *DatabaseClient) AppendChat(ctx context.Context, rec *models.ChatRecord) error {
	if rec == nil {
		return errors.New("nil chat record")
	}
	const q = `
		INSERT INTO chats (id, user_id, question, answer, error, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		rec.ID, rec.UserID, rec.Question, rec.Answer, rec.Error, rec.CreatedAt)
	return mapWriteErr(err)
}

// ListRecentChats returns the `limit` most recent records for the user in
// chronological order. The query selects newest-first so the cap keeps
// recent history, then the slice is reversed for oldest-first display.
func (c *DatabaseClient) ListRecentChats(ctx context.Context, userID string, limit int) ([]models.ChatRecord, error) {
	const q = `
		SELECT id, user_id, question, answer, error, created_at
		FROM chats
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := c.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []models.ChatRecord
	for rows.Next() {
		var r models.ChatRecord
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.Question, &r.Answer, &r.Error, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Corpus

func (c *DatabaseClient) CreateCorpusDocument(ctx context.Context, doc *models.CorpusDocument) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		INSERT INTO corpus_documents (id, source, title, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`
	_, err := c.db.ExecContext(ctx, q, doc.ID, doc.Source, doc.Title, doc.CreatedAt)
	return mapWriteErr(err)
}

// InsertCorpusChunks inserts chunks in a single transaction.
func (c *DatabaseClient) InsertCorpusChunks(ctx context.Context, chunks []models.CorpusChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}

	const q = `
		INSERT INTO corpus_chunks
			(id, document_id, position, text, embedding, token_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
	`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}
	defer stmt.Close()

	for i := range chunks {
		ch := &chunks[i]
		vec := pgvector.NewVector(ch.Embedding)
		if _, err := stmt.ExecContext(ctx,
			ch.ID, ch.DocumentID, ch.Position, ch.Text, vec, ch.TokenCount, ch.CreatedAt,
		); err != nil {
			_ = tx.Rollback()
			return mapWriteErr(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}
	return nil
}

// SearchCorpusChunks finds the top-k chunks nearest to a query embedding.
func (c *DatabaseClient) SearchCorpusChunks(ctx context.Context, queryVec []float32, limit int) ([]models.CorpusChunk, error) {
	const q = `
		SELECT id, document_id, position, text, embedding, token_count
		FROM corpus_chunks
		ORDER BY embedding <-> $1
		LIMIT $2
	`
	vec := pgvector.NewVector(queryVec)
	rows, err := c.db.QueryContext(ctx, q, vec, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []models.CorpusChunk
	for rows.Next() {
		var (
			ch  models.CorpusChunk
			emb pgvector.Vector
		)
		if err := rows.Scan(&ch.ID, &ch.DocumentID, &ch.Position, &ch.Text, &emb, &ch.TokenCount); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
		}
		ch.Embedding = emb.Slice()
		out = append(out, ch)
	}
	return out, rows.Err()
}

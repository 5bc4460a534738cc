// Package ingest builds the retrieval index the question-answering delegate
// searches: it extracts text from corpus files, chunks it, embeds the chunks
// and persists them to pgvector.
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bee-edu/askbee/internal/core"
	"github.com/bee-edu/askbee/internal/models"
)

// Config tunes the streaming pipeline.
//
// TargetTokens:  approximate tokens per chunk.
// OverlapTokens: token overlap between consecutive chunks for context bleed.
// BatchSize:     how many chunks to embed/write in one batch.
type Config struct {
	TargetTokens  int
	OverlapTokens int
	BatchSize     int
}

func DefaultConfig() *Config {
	return &Config{TargetTokens: 300, OverlapTokens: 30, BatchSize: 16}
}

// Ingestor orchestrates extract → chunk → embed → persist for corpus files.
type Ingestor struct {
	db        core.DbClient
	embedder  core.EmbeddingProvider
	extractor TextExtractor
	cfg       *Config
}

func NewIngestor(db core.DbClient, embedder core.EmbeddingProvider, extractor TextExtractor, cfg *Config) *Ingestor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Ingestor{db: db, embedder: embedder, extractor: extractor, cfg: cfg}
}

// IngestBytes runs the pipeline for one document. The document row is
// written first so chunks always reference an existing parent.
func (i *Ingestor) IngestBytes(ctx context.Context, source, title, contentType string, data []byte) error {
	procCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	doc := &models.CorpusDocument{
		ID:        uuid.NewString(),
		Source:    source,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := i.db.CreateCorpusDocument(procCtx, doc); err != nil {
		return fmt.Errorf("create corpus document: %w", err)
	}

	g, gctx := errgroup.WithContext(procCtx)

	fragCh, err := i.extractor.ExtractText(gctx, data, contentType)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	chunkCh := streamChunk(gctx, g, fragCh, i.cfg.TargetTokens, i.cfg.OverlapTokens)

	g.Go(func() error {
		return i.embedAndPersist(gctx, doc.ID, chunkCh, i.cfg.BatchSize)
	})

	// Any stage error cancels the rest.
	if err := g.Wait(); err != nil {
		return fmt.Errorf("ingest %s: %w", source, err)
	}
	log.Printf("ingested %s (%s)", source, doc.ID)
	return nil
}

// embedAndPersist consumes chunks, embeds them in batches, and writes to DB.
func (i *Ingestor) embedAndPersist(ctx context.Context, docID string, in <-chan chunk, batchSize int) error {
	batch := make([]chunk, 0, batchSize)

	flush := func(items []chunk) error {
		if len(items) == 0 {
			return nil
		}

		texts := make([]string, len(items))
		for idx := range items {
			texts[idx] = items[idx].Text
		}

		vecs, err := i.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed: %w", err)
		}
		if len(vecs) != len(items) {
			return fmt.Errorf("embed size mismatch: got %d want %d", len(vecs), len(items))
		}

		rows := make([]models.CorpusChunk, len(items))
		for k := range items {
			rows[k] = models.CorpusChunk{
				ID:         uuid.NewString(),
				DocumentID: docID,
				Text:       items[k].Text,
				Embedding:  vecs[k],
				Position:   items[k].Pos,
				TokenCount: items[k].TokenCnt,
				CreatedAt:  time.Now().UTC(),
			}
		}
		if err := i.db.InsertCorpusChunks(ctx, rows); err != nil {
			return fmt.Errorf("insert chunks: %w", err)
		}
		return nil
	}

	for c := range in {
		batch = append(batch, c)
		if len(batch) == batchSize {
			if err := flush(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	// Final tail.
	return flush(batch)
}

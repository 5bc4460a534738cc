package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bee-edu/askbee/internal/core"
	"github.com/bee-edu/askbee/internal/models"
)

type captureDB struct {
	core.DbClient
	docs   []models.CorpusDocument
	chunks []models.CorpusChunk
}

func (c *captureDB) CreateCorpusDocument(ctx context.Context, doc *models.CorpusDocument) error {
	c.docs = append(c.docs, *doc)
	return nil
}

func (c *captureDB) InsertCorpusChunks(ctx context.Context, chunks []models.CorpusChunk) error {
	c.chunks = append(c.chunks, chunks...)
	return nil
}

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 2, 3}
	}
	return out, nil
}

func TestIngestBytes(t *testing.T) {
	db := &captureDB{}
	emb := &countingEmbedder{}
	ing := NewIngestor(db, emb, PlainTextExtractor{}, &Config{TargetTokens: 10, OverlapTokens: 0, BatchSize: 2})

	text := strings.Join([]string{
		"The mitochondria is the powerhouse of the cell.",
		"Photosynthesis happens in chloroplasts.",
		"Osmosis moves water across membranes.",
	}, "\n")

	err := ing.IngestBytes(context.Background(), "notes/bio.txt", "bio.txt", "text/plain", []byte(text))
	require.NoError(t, err)

	require.Len(t, db.docs, 1)
	assert.Equal(t, "notes/bio.txt", db.docs[0].Source)
	assert.Equal(t, "bio.txt", db.docs[0].Title)

	require.NotEmpty(t, db.chunks)
	for i, ch := range db.chunks {
		assert.Equal(t, db.docs[0].ID, ch.DocumentID)
		assert.Equal(t, i, ch.Position)
		assert.NotEmpty(t, ch.ID)
		assert.Equal(t, []float32{1, 2, 3}, ch.Embedding)
		assert.Positive(t, ch.TokenCount)
	}
	assert.Positive(t, emb.calls)
}

func TestPlainTextExtractor_SkipsBlankLines(t *testing.T) {
	out, err := PlainTextExtractor{}.ExtractText(context.Background(), []byte("one\n\n  \ntwo\n"), "text/plain")
	require.NoError(t, err)

	var frags []string
	for f := range out {
		frags = append(frags, f)
	}
	assert.Equal(t, []string{"one", "two"}, frags)
}

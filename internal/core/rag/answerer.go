// Package rag wires the retrieval-augmented answering pipeline: embed the
// question, pull the nearest corpus chunks from pgvector, and condition the
// LLM on them. Callers only see the Answerer contract.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/bee-edu/askbee/internal/core"
)

const systemPrompt = "Use the given pieces of context to answer the question. " +
	"If you don't know the answer, just say that you don't know, don't try to make up an answer."

type Retriever struct {
	db       core.DbClient
	embedder core.EmbeddingProvider
	llm      core.LLMProvider
	topK     int
}

// New builds the delegate eagerly; it is constructed once at startup and
// shared for the process lifetime.
func New(db core.DbClient, embedder core.EmbeddingProvider, llm core.LLMProvider, topK int) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{db: db, embedder: embedder, llm: llm, topK: topK}
}

// Answer runs the full pipeline for one question. Every internal failure is
// reported as one opaque core.ErrDelegate; there are no retries and no
// fallback.
func (r *Retriever) Answer(ctx context.Context, question string) (string, error) {
	vecs, err := r.embedder.EmbedTexts(ctx, []string{question})
	if err != nil || len(vecs) == 0 {
		return "", fmt.Errorf("%w: embed question: %v", core.ErrDelegate, err)
	}

	chunks, err := r.db.SearchCorpusChunks(ctx, vecs[0], r.topK)
	if err != nil {
		return "", fmt.Errorf("%w: retrieve context: %v", core.ErrDelegate, err)
	}

	var sb strings.Builder
	for _, ch := range chunks {
		sb.WriteString(ch.Text)
		sb.WriteString("\n\n")
	}

	userPrompt := fmt.Sprintf("Context:\n%s\nQuestion: %s\n\nHelpful Answer:", sb.String(), question)

	answer, err := r.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", core.ErrDelegate, err)
	}
	return strings.TrimSpace(answer), nil
}

var _ core.Answerer = (*Retriever)(nil)

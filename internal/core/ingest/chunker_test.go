package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func collectChunks(t *testing.T, frags []string, target, overlap int) []chunk {
	t.Helper()

	in := make(chan string, len(frags))
	for _, f := range frags {
		in <- f
	}
	close(in)

	g, ctx := errgroup.WithContext(context.Background())
	out := streamChunk(ctx, g, in, target, overlap)

	var got []chunk
	for c := range out {
		got = append(got, c)
	}
	require.NoError(t, g.Wait())
	return got
}

func TestStreamChunk_PositionsAndContent(t *testing.T) {
	frags := []string{
		strings.Repeat("a", 40), // ~10 tokens each
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
		strings.Repeat("d", 40),
	}

	got := collectChunks(t, frags, 20, 0)
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].Pos)
	assert.Equal(t, 1, got[1].Pos)
	assert.Contains(t, got[0].Text, "aaa")
	assert.Contains(t, got[1].Text, "ccc")
	assert.GreaterOrEqual(t, got[0].TokenCnt, 20)
}

func TestStreamChunk_Overlap(t *testing.T) {
	frags := []string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
		strings.Repeat("d", 40),
	}

	got := collectChunks(t, frags, 20, 10)
	require.GreaterOrEqual(t, len(got), 2)

	// the tail of one chunk seeds the next
	assert.Contains(t, got[1].Text, "bbb")
}

func TestStreamChunk_TailFlushed(t *testing.T) {
	got := collectChunks(t, []string{"short fragment"}, 1000, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "short fragment", got[0].Text)
}

func TestStreamChunk_Empty(t *testing.T) {
	got := collectChunks(t, nil, 100, 10)
	assert.Empty(t, got)
}

func TestApproxTokens(t *testing.T) {
	assert.Equal(t, 0, approxTokens(""))
	assert.Equal(t, 1, approxTokens("abc"))
	assert.Equal(t, 1, approxTokens("abcd"))
	assert.Equal(t, 2, approxTokens("abcde"))
}

package ingest

import (
	"bytes"
	"context"
	"log"
	"strings"

	"code.sajari.com/docconv"
)

// TextExtractor turns a raw document into a stream of text fragments. The
// contentType hint selects the parsing strategy.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, contentType string) (<-chan string, error)
}

// DocconvExtractor implements TextExtractor using sajari/docconv.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

var _ TextExtractor = (*DocconvExtractor)(nil)

// ExtractText converts the document and emits its non-empty lines as
// fragments on the returned channel.
func (e *DocconvExtractor) ExtractText(ctx context.Context, data []byte, contentType string) (<-chan string, error) {
	out := make(chan string, 32)

	reader := bytes.NewReader(data)

	go func() {
		defer close(out)

		res, err := docconv.Convert(reader, contentType, e.useReadability)
		if err != nil {
			log.Printf("docconv: extraction failed for content type %q: %v", contentType, err)
			return
		}
		if res.Body == "" {
			log.Printf("docconv: extracted empty text for content type %q", contentType)
			return
		}

		for _, line := range strings.Split(res.Body, "\n") {
			if line = strings.TrimSpace(line); line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// PlainTextExtractor skips docconv for sources that are already text
// (.txt, .md). Same fragment contract as DocconvExtractor.
type PlainTextExtractor struct{}

var _ TextExtractor = (*PlainTextExtractor)(nil)

func (PlainTextExtractor) ExtractText(ctx context.Context, data []byte, _ string) (<-chan string, error) {
	out := make(chan string, 32)

	go func() {
		defer close(out)
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

package studio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultChunkSize is the translation chunk length in characters.
const DefaultChunkSize = 500

// Chunk cuts text into contiguous pieces of at most size characters. Cuts
// ignore word boundaries. Empty text yields no chunks.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// ChunkedTranslator translates long text through a Translator that only
// accepts short input. Chunks are translated one at a time, in order, and
// the results joined with single spaces. The first failing chunk fails the
// whole translation.
type ChunkedTranslator struct {
	Translator Translator
	Size       int
}

// NewChunkedTranslator wraps t with DefaultChunkSize chunks.
func NewChunkedTranslator(t Translator) *ChunkedTranslator {
	return &ChunkedTranslator{Translator: t, Size: DefaultChunkSize}
}

func (c *ChunkedTranslator) Translate(ctx context.Context, text string) (string, error) {
	chunks := Chunk(text, c.Size)
	out := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := c.Translator.Translate(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		slog.Debug("studio: translated chunk", "index", i, "in", len(chunk), "out", len(res))
		out = append(out, res)
	}
	return strings.Join(out, " "), nil
}

var _ Translator = (*ChunkedTranslator)(nil)

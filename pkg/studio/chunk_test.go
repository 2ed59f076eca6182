package studio_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/haivivi/studio/pkg/studio"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		size  int
		sizes []int
	}{
		{name: "empty", text: "", size: 500, sizes: nil},
		{name: "short", text: "hello", size: 500, sizes: []int{5}},
		{name: "exact", text: strings.Repeat("a", 1000), size: 500, sizes: []int{500, 500}},
		{name: "1200 chars", text: strings.Repeat("b", 1200), size: 500, sizes: []int{500, 500, 200}},
		{name: "runes", text: strings.Repeat("é", 7), size: 3, sizes: []int{3, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := studio.Chunk(tt.text, tt.size)
			if len(chunks) != len(tt.sizes) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tt.sizes))
			}
			for i, c := range chunks {
				if n := utf8.RuneCountInString(c); n != tt.sizes[i] {
					t.Errorf("chunk %d has %d chars, want %d", i, n, tt.sizes[i])
				}
			}
			if got := strings.Join(chunks, ""); got != tt.text {
				t.Errorf("chunks do not reassemble the input")
			}
		})
	}
}

func TestChunkSplitsMidWord(t *testing.T) {
	chunks := studio.Chunk("abcdef ghij", 4)
	want := []string{"abcd", "ef g", "hij"}
	if strings.Join(chunks, "|") != strings.Join(want, "|") {
		t.Fatalf("chunks = %q, want %q", chunks, want)
	}
}

func TestChunkedTranslatorOrder(t *testing.T) {
	text := strings.Repeat("a", 500) + strings.Repeat("b", 500) + strings.Repeat("c", 200)

	var seen []string
	tr := studio.NewChunkedTranslator(studio.TranslatorFunc(func(_ context.Context, chunk string) (string, error) {
		seen = append(seen, chunk)
		return strings.ToUpper(chunk[:1]) + "x", nil
	}))

	got, err := tr.Translate(context.Background(), text)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("chunks submitted = %d, want 3", len(seen))
	}
	for i, want := range []int{500, 500, 200} {
		if len(seen[i]) != want {
			t.Errorf("chunk %d len = %d, want %d", i, len(seen[i]), want)
		}
	}
	if got != "Ax Bx Cx" {
		t.Errorf("translation = %q, want %q", got, "Ax Bx Cx")
	}
}

func TestChunkedTranslatorPreservesCharacters(t *testing.T) {
	text := strings.Repeat("the quick brown fox ", 60)
	identity := studio.NewChunkedTranslator(studio.TranslatorFunc(func(_ context.Context, chunk string) (string, error) {
		return chunk, nil
	}))

	got, err := identity.Translate(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	nonSpace := func(s string) int { return len(strings.ReplaceAll(s, " ", "")) }
	if nonSpace(got) < nonSpace(text) {
		t.Errorf("lost characters: %d < %d", nonSpace(got), nonSpace(text))
	}
}

func TestChunkedTranslatorAbortsOnFailure(t *testing.T) {
	boom := errors.New("503")
	calls := 0
	tr := studio.NewChunkedTranslator(studio.TranslatorFunc(func(_ context.Context, chunk string) (string, error) {
		calls++
		if calls == 2 {
			return "", boom
		}
		return chunk, nil
	}))

	_, err := tr.Translate(context.Background(), strings.Repeat("z", 1500))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if !strings.Contains(err.Error(), "chunk 2/3") {
		t.Errorf("err = %q, want chunk position", err)
	}
}

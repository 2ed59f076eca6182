package studio

import (
	"bytes"
	"context"
	"net/http"
)

// Kind classifies an artifact.
type Kind string

const (
	KindImage       Kind = "image"
	KindCaption     Kind = "caption"
	KindStory       Kind = "story"
	KindResponse    Kind = "response"
	KindTranslation Kind = "translation"
	KindSpeech      Kind = "speech"
	KindMusic       Kind = "music"
)

var kindTitles = map[Kind]string{
	KindImage:       "Generated Image",
	KindCaption:     "Caption (Title)",
	KindStory:       "Story Script",
	KindResponse:    "AI Response",
	KindTranslation: "Arabic Translation",
	KindSpeech:      "Narration",
	KindMusic:       "Generated Music",
}

// Title returns the display heading of the kind.
func (k Kind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return string(k)
}

// Binary reports whether artifacts of this kind carry Data rather than Text.
func (k Kind) Binary() bool {
	switch k {
	case KindImage, KindSpeech, KindMusic:
		return true
	}
	return false
}

// Artifact is the output of one stage. It is passed by value and its Data
// is never written after creation.
type Artifact struct {
	Stage    Stage  `json:"stage"`
	Kind     Kind   `json:"kind"`
	Text     string `json:"text,omitempty"`
	Data     []byte `json:"-"`
	MIMEType string `json:"mime_type,omitempty"`

	// Path is the transient file backing a speech artifact. It is only
	// valid during Sink.Show.
	Path string `json:"-"`
}

// Size returns the length of Data, or of Text for text artifacts.
func (a Artifact) Size() int {
	if a.Kind.Binary() {
		return len(a.Data)
	}
	return len(a.Text)
}

// Audio is synthesized speech backed by a transient file. The holder must
// call Release.
type Audio struct {
	Data     []byte
	MIMEType string
	Path     string

	release func(context.Context) error
}

// NewAudio wraps synthesized audio. release, if non-nil, removes the
// backing file.
func NewAudio(data []byte, mimeType, path string, release func(context.Context) error) *Audio {
	return &Audio{Data: data, MIMEType: mimeType, Path: path, release: release}
}

// Release frees the backing file. It is safe on a nil Audio.
func (a *Audio) Release(ctx context.Context) error {
	if a == nil || a.release == nil {
		return nil
	}
	return a.release(ctx)
}

// sniffMIME detects the content type of generated media. FLAC, which
// music endpoints commonly return, is not known to http.DetectContentType.
func sniffMIME(data []byte) string {
	if bytes.HasPrefix(data, []byte("fLaC")) {
		return "audio/flac"
	}
	return http.DetectContentType(data)
}

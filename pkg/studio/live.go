package studio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/haivivi/studio/pkg/gtts"
	"github.com/haivivi/studio/pkg/hfinference"
	"github.com/haivivi/studio/pkg/storage"
)

// LiveConfig binds capabilities to network clients.
type LiveConfig struct {
	// HF serves image, caption, chat, translation and music.
	HF *hfinference.Client

	// Speech and Store serve narration. Audio is written to Store under a
	// unique name and removed when released.
	Speech *gtts.Client
	Store  storage.Store

	// Model overrides; empty selects the client defaults.
	ImageModel       string
	CaptionModel     string
	ChatModel        string
	TranslationModel string
	MusicModel       string

	// ChatMaxTokens bounds chat output; zero selects
	// hfinference.DefaultChatMaxTokens.
	ChatMaxTokens int

	// Captioner replaces the Hugging Face captioner when set.
	Captioner Captioner
}

// NewLiveAdapters binds every capability available in cfg.
func NewLiveAdapters(cfg LiveConfig) Adapters {
	var a Adapters
	if cfg.HF != nil {
		a.Image = &HFImage{Client: cfg.HF, Model: cfg.ImageModel}
		a.Captioner = &HFCaptioner{Client: cfg.HF, Model: cfg.CaptionModel}
		a.Chat = &HFChat{Client: cfg.HF, Model: cfg.ChatModel, MaxTokens: cfg.ChatMaxTokens}
		a.Translator = NewChunkedTranslator(&HFTranslator{Client: cfg.HF, Model: cfg.TranslationModel})
		a.Music = &HFMusic{Client: cfg.HF, Model: cfg.MusicModel}
	}
	if cfg.Captioner != nil {
		a.Captioner = cfg.Captioner
	}
	if cfg.Speech != nil && cfg.Store != nil {
		a.Speech = &GTTSSpeech{Client: cfg.Speech, Store: cfg.Store}
	}
	return a
}

// HFImage synthesizes images with a text-to-image model.
type HFImage struct {
	Client *hfinference.Client
	Model  string
}

func (h *HFImage) SynthesizeImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := h.Client.Image.Generate(ctx, &hfinference.ImageRequest{Model: h.Model, Inputs: prompt})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// HFCaptioner captions images with an image-to-text model.
type HFCaptioner struct {
	Client *hfinference.Client
	Model  string
}

// Caption maps empty and malformed responses to ErrNoCaption.
func (h *HFCaptioner) Caption(ctx context.Context, image []byte) (string, error) {
	text, err := h.Client.Caption.Describe(ctx, &hfinference.CaptionRequest{Model: h.Model, Image: image})
	if errors.Is(err, hfinference.ErrEmptyResult) || errors.Is(err, hfinference.ErrMalformedResponse) {
		return "", fmt.Errorf("%w: %v", ErrNoCaption, err)
	}
	return text, err
}

// HFChat answers prompts through the chat router.
type HFChat struct {
	Client    *hfinference.Client
	Model     string
	MaxTokens int
}

func (h *HFChat) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := h.Client.Chat.Complete(ctx, &hfinference.ChatRequest{
		Model:     h.Model,
		Prompt:    prompt,
		MaxTokens: h.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// HFTranslator translates one chunk with a translation model. Wrap it in
// a ChunkedTranslator for long text.
type HFTranslator struct {
	Client *hfinference.Client
	Model  string
}

func (h *HFTranslator) Translate(ctx context.Context, text string) (string, error) {
	return h.Client.Translation.Translate(ctx, &hfinference.TranslationRequest{Model: h.Model, Inputs: text})
}

// HFMusic composes audio with a text-to-audio model.
type HFMusic struct {
	Client *hfinference.Client
	Model  string
}

func (h *HFMusic) GenerateMusic(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := h.Client.Music.Generate(ctx, &hfinference.MusicRequest{Model: h.Model, Inputs: prompt})
	if err != nil {
		return nil, err
	}
	return resp.Audio, nil
}

// GTTSSpeech narrates text into a uniquely named MP3 in Store.
type GTTSSpeech struct {
	Client *gtts.Client
	Store  storage.Store
}

func (g *GTTSSpeech) SynthesizeSpeech(ctx context.Context, text string) (*Audio, error) {
	lease, err := storage.Acquire(ctx, g.Store, "speech/", ".mp3", func(w io.Writer) error {
		return g.Client.SynthesizeTo(ctx, w, text)
	})
	if err != nil {
		return nil, err
	}

	data, err := lease.ReadAll(ctx)
	if err != nil {
		lease.Release(ctx)
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}
	return NewAudio(data, gtts.MIMEType, lease.Path(), lease.Release), nil
}

var (
	_ ImageSynthesizer  = (*HFImage)(nil)
	_ Captioner         = (*HFCaptioner)(nil)
	_ ChatGenerator     = (*HFChat)(nil)
	_ Translator        = (*HFTranslator)(nil)
	_ MusicGenerator    = (*HFMusic)(nil)
	_ SpeechSynthesizer = (*GTTSSpeech)(nil)
)

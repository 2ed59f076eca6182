package studio

import "context"

// ImageSynthesizer renders an image from a text prompt.
type ImageSynthesizer interface {
	SynthesizeImage(ctx context.Context, prompt string) ([]byte, error)
}

// Captioner describes an image in one line of text.
type Captioner interface {
	Caption(ctx context.Context, image []byte) (string, error)
}

// ChatGenerator answers a single prompt. Implementations keep no history
// between calls.
type ChatGenerator interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Translator translates text into the target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// SpeechSynthesizer narrates text. The returned Audio must be released.
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) (*Audio, error)
}

// MusicGenerator composes audio from a description of genre or mood.
type MusicGenerator interface {
	GenerateMusic(ctx context.Context, prompt string) ([]byte, error)
}

// Adapters binds each capability. A nil field disables the stages that
// need it.
type Adapters struct {
	Image      ImageSynthesizer
	Captioner  Captioner
	Chat       ChatGenerator
	Translator Translator
	Speech     SpeechSynthesizer
	Music      MusicGenerator
}

func (a Adapters) empty() bool {
	return a.Image == nil && a.Captioner == nil && a.Chat == nil &&
		a.Translator == nil && a.Speech == nil && a.Music == nil
}

// ImageSynthesizerFunc adapts a function to ImageSynthesizer.
type ImageSynthesizerFunc func(ctx context.Context, prompt string) ([]byte, error)

func (f ImageSynthesizerFunc) SynthesizeImage(ctx context.Context, prompt string) ([]byte, error) {
	return f(ctx, prompt)
}

// CaptionerFunc adapts a function to Captioner.
type CaptionerFunc func(ctx context.Context, image []byte) (string, error)

func (f CaptionerFunc) Caption(ctx context.Context, image []byte) (string, error) {
	return f(ctx, image)
}

// ChatGeneratorFunc adapts a function to ChatGenerator.
type ChatGeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f ChatGeneratorFunc) Chat(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(ctx context.Context, text string) (string, error)

func (f TranslatorFunc) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// SpeechSynthesizerFunc adapts a function to SpeechSynthesizer.
type SpeechSynthesizerFunc func(ctx context.Context, text string) (*Audio, error)

func (f SpeechSynthesizerFunc) SynthesizeSpeech(ctx context.Context, text string) (*Audio, error) {
	return f(ctx, text)
}

// MusicGeneratorFunc adapts a function to MusicGenerator.
type MusicGeneratorFunc func(ctx context.Context, prompt string) ([]byte, error)

func (f MusicGeneratorFunc) GenerateMusic(ctx context.Context, prompt string) ([]byte, error) {
	return f(ctx, prompt)
}

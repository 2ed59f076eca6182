package hfinference

// ================== Image ==================

// ImageRequest is the request for text-to-image generation.
type ImageRequest struct {
	// Model is the model ID. Defaults to ModelFluxDev.
	Model string `json:"-" yaml:"model,omitempty"`

	// Inputs is the text prompt.
	Inputs string `json:"inputs" yaml:"inputs"`
}

// ImageResponse is the generated image.
type ImageResponse struct {
	// Data is the encoded image.
	Data []byte `json:"-"`
}

// ================== Caption ==================

// CaptionRequest is the request for image-to-text captioning.
type CaptionRequest struct {
	// Model is the model ID. Defaults to ModelViTGPT2Caption.
	Model string `json:"-" yaml:"model,omitempty"`

	// Image is the encoded image, sent as the raw request body.
	Image []byte `json:"-" yaml:"-"`
}

// ================== Translation ==================

// TranslationRequest is the request for machine translation.
type TranslationRequest struct {
	// Model is the model ID. Defaults to ModelOpusMTEnAr.
	Model string `json:"-" yaml:"model,omitempty"`

	// Inputs is the text to translate. The endpoint has an input length
	// limit; callers translating long text split it first.
	Inputs string `json:"inputs" yaml:"inputs"`
}

// ================== Music ==================

// MusicRequest is the request for text-to-audio generation.
type MusicRequest struct {
	// Model is the model ID. Defaults to ModelMusicGenSmall.
	Model string `json:"-" yaml:"model,omitempty"`

	// Inputs describes the genre or mood of the music.
	Inputs string `json:"inputs" yaml:"inputs"`
}

// MusicResponse is the generated audio.
type MusicResponse struct {
	// Audio is the encoded audio.
	Audio []byte `json:"-"`
}

// ================== Chat ==================

// ChatRequest is a single-turn chat completion request.
//
// There is no message history: each request carries exactly one user turn.
type ChatRequest struct {
	// Model is the model ID. Defaults to ModelLlama3_8BInstruct.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Prompt is the user message.
	Prompt string `json:"prompt" yaml:"prompt"`

	// MaxTokens bounds the generated output. Defaults to DefaultChatMaxTokens.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// ChatResponse is a chat completion result.
type ChatResponse struct {
	// Content is the generated text.
	Content string `json:"content"`

	// Model is the model that answered.
	Model string `json:"model"`

	// FinishReason is why generation stopped, e.g. "stop" or "length".
	FinishReason string `json:"finish_reason"`

	// PromptTokens and CompletionTokens report usage when available.
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
}

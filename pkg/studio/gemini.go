package studio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used for captions.
const DefaultGeminiModel = "gemini-2.5-flash"

const geminiCaptionInstruction = "Write a short one-line caption for this image. Reply with the caption only."

// GeminiCaptioner captions images with a Gemini multimodal model.
type GeminiCaptioner struct {
	Client *genai.Client
	Model  string
}

// NewGeminiCaptioner creates a captioner over the Gemini API.
func NewGeminiCaptioner(ctx context.Context, apiKey, model string) (*GeminiCaptioner, error) {
	if apiKey == "" {
		return nil, errors.New("studio: gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("studio: create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiCaptioner{Client: client, Model: model}, nil
}

func (g *GeminiCaptioner) Caption(ctx context.Context, image []byte) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, http.DetectContentType(image)),
			genai.NewPartFromText(geminiCaptionInstruction),
		}, genai.RoleUser),
	}
	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: 64,
	})
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPCode() > 0 {
			return "", fmt.Errorf("gemini (status=%d): %w", apiErr.HTTPCode(), err)
		}
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoCaption
	}
	caption := strings.TrimSpace(resp.Text())
	if caption == "" {
		return "", ErrNoCaption
	}
	return caption, nil
}

var _ Captioner = (*GeminiCaptioner)(nil)

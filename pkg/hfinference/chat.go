package hfinference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultChatMaxTokens bounds chat output when a request does not say.
const DefaultChatMaxTokens = 1000

// ChatService provides single-turn chat completions through the
// OpenAI-compatible router.
type ChatService struct {
	client *Client
	oai    openai.Client
}

// newChatService creates a new chat service.
func newChatService(client *Client) *ChatService {
	cfg := client.config
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.apiKey),
		option.WithBaseURL(strings.TrimRight(cfg.routerURL, "/") + "/"),
		option.WithHTTPClient(cfg.httpClient),
		option.WithMaxRetries(cfg.maxRetries),
	}
	return &ChatService{
		client: client,
		oai:    openai.NewClient(opts...),
	}
}

// Complete generates a reply to a single user message.
//
// No history is sent: two calls with the same prompt are independent.
func (s *ChatService) Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = ModelLlama3_8BInstruct
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultChatMaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	}

	if l := s.client.config.limiter; l != nil {
		if err := l.Wait(ctx); err != nil {
			return nil, err
		}
	}

	slog.Debug("hfinference chat", "model", model, "prompt_len", len(req.Prompt), "max_tokens", maxTokens)

	resp, err := s.oai.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &Error{
				HTTPStatus: apiErr.StatusCode,
				Message:    apiErr.Message,
			}
		}
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, ErrEmptyResult
	}
	choice := resp.Choices[0]

	return &ChatResponse{
		Content:          choice.Message.Content,
		Model:            resp.Model,
		FinishReason:     choice.FinishReason,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

package hfinference

import (
	"context"
	"net/http"
)

// CaptionService provides image-to-text captioning.
type CaptionService struct {
	client *Client
}

// newCaptionService creates a new caption service.
func newCaptionService(client *Client) *CaptionService {
	return &CaptionService{client: client}
}

// Describe returns a caption for an image.
//
// The image is posted as the raw request body. The endpoint answers with a
// list of {"generated_text": ...} records; the first record's text is
// returned. An empty list yields ErrEmptyResult.
func (s *CaptionService) Describe(ctx context.Context, req *CaptionRequest) (string, error) {
	if len(req.Image) == 0 {
		return "", ErrEmptyResult
	}

	model := req.Model
	if model == "" {
		model = ModelViTGPT2Caption
	}

	resp, err := s.client.http.post(ctx, model, http.DetectContentType(req.Image), req.Image)
	if err != nil {
		return "", err
	}

	return extractText(captionQuery, resp.Body)
}

package hfinference

import (
	"context"
	"fmt"
	"strings"
)

// ImageService provides text-to-image generation.
type ImageService struct {
	client *Client
}

// newImageService creates a new image service.
func newImageService(client *Client) *ImageService {
	return &ImageService{client: client}
}

// Generate generates an image from a text prompt.
//
// Example:
//
//	resp, err := client.Image.Generate(ctx, &hfinference.ImageRequest{
//	    Inputs: "A beautiful sunset over mountains",
//	})
func (s *ImageService) Generate(ctx context.Context, req *ImageRequest) (*ImageResponse, error) {
	model := req.Model
	if model == "" {
		model = ModelFluxDev
	}

	resp, err := s.client.http.postJSON(ctx, model, req)
	if err != nil {
		return nil, err
	}

	if err := expectBinary(resp, "image/"); err != nil {
		return nil, err
	}

	return &ImageResponse{Data: resp.Body}, nil
}

// expectBinary checks that a successful response carries a binary payload
// rather than a JSON document.
func expectBinary(resp *rawResponse, wantPrefix string) error {
	if len(resp.Body) == 0 {
		return ErrEmptyResult
	}
	ct := strings.ToLower(resp.ContentType)
	if strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("%w: expected %s* payload, got %s", ErrMalformedResponse, wantPrefix, resp.ContentType)
	}
	return nil
}

package hfinference

import (
	"context"
)

// MusicService provides text-to-audio generation.
type MusicService struct {
	client *Client
}

// newMusicService creates a new music service.
func newMusicService(client *Client) *MusicService {
	return &MusicService{client: client}
}

// Generate generates audio from a description of genre or mood.
//
// Example:
//
//	resp, err := client.Music.Generate(ctx, &hfinference.MusicRequest{
//	    Inputs: "calm lo-fi piano with rain",
//	})
func (s *MusicService) Generate(ctx context.Context, req *MusicRequest) (*MusicResponse, error) {
	model := req.Model
	if model == "" {
		model = ModelMusicGenSmall
	}

	resp, err := s.client.http.postJSON(ctx, model, req)
	if err != nil {
		return nil, err
	}

	if err := expectBinary(resp, "audio/"); err != nil {
		return nil, err
	}

	return &MusicResponse{Audio: resp.Body}, nil
}

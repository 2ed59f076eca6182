package hfinference

import (
	"context"
)

// TranslationService provides machine translation.
type TranslationService struct {
	client *Client
}

// newTranslationService creates a new translation service.
func newTranslationService(client *Client) *TranslationService {
	return &TranslationService{client: client}
}

// Translate translates a single piece of text.
//
// The endpoint answers with a list of {"translation_text": ...} records;
// the first record's text is returned.
func (s *TranslationService) Translate(ctx context.Context, req *TranslationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = ModelOpusMTEnAr
	}

	resp, err := s.client.http.postJSON(ctx, model, req)
	if err != nil {
		return "", err
	}

	return extractText(translationQuery, resp.Body)
}

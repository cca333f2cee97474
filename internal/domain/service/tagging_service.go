package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TagSuggestion is what the vision collaborator extracts from an item photo.
type TagSuggestion struct {
	Category       string   `json:"category"`
	Color          string   `json:"color"`
	StyleTags      []string `json:"style_tags"`
	EstimatedPrice int      `json:"estimated_price"`
}

// TaggingService is the AI tag-generation collaborator. The core only
// consumes the suggested fields; a failure reverts the upload flow to manual
// entry, it never blocks item creation.
type TaggingService interface {
	SuggestTags(ctx context.Context, image []byte, mimeType string) (*TagSuggestion, error)
}

// HTTPTaggingService calls an external vision endpoint.
type HTTPTaggingService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPTaggingService(endpoint, apiKey string) *HTTPTaggingService {
	return &HTTPTaggingService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

type taggingRequest struct {
	ImageData string `json:"image_data"`
	MimeType  string `json:"mime_type"`
}

func (s *HTTPTaggingService) SuggestTags(ctx context.Context, image []byte, mimeType string) (*TagSuggestion, error) {
	payload, err := json.Marshal(taggingRequest{
		ImageData: base64.StdEncoding.EncodeToString(image),
		MimeType:  mimeType,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tagging service returned %d: %s", resp.StatusCode, string(body))
	}

	var suggestion TagSuggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestion); err != nil {
		return nil, err
	}

	return &suggestion, nil
}

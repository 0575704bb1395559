// File: internal/infra/adapters/instagram/publisher.go
package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"content-studio/internal/config"
	"content-studio/internal/domain/ports/adapter"
)

var _ adapter.SocialPublisher = (*GraphPublisher)(nil)

// GraphPublisher posts a single image through the Instagram Graph API:
// a media container is created first, then published.
type GraphPublisher struct {
	client      *http.Client
	accessToken string
	userID      string
	baseURL     string
	log         zerolog.Logger
}

func NewGraphPublisher(cfg config.InstagramConfig, logger *zerolog.Logger) (*GraphPublisher, error) {
	if cfg.AccessToken == "" || cfg.UserID == "" {
		return nil, errors.New("instagram: access token and user id are required")
	}
	return &GraphPublisher{
		client:      &http.Client{Timeout: 30 * time.Second},
		accessToken: cfg.AccessToken,
		userID:      cfg.UserID,
		baseURL:     cfg.GraphBaseURL,
		log:         logger.With().Str("component", "instagram_publisher").Logger(),
	}, nil
}

func (p *GraphPublisher) Platform() string { return "instagram" }

func (p *GraphPublisher) Publish(ctx context.Context, req adapter.PublishRequest) (string, error) {
	containerID, err := p.createContainer(ctx, req.ImageURL, req.Caption)
	if err != nil {
		return "", fmt.Errorf("create media container: %w", err)
	}
	postID, err := p.publishContainer(ctx, containerID)
	if err != nil {
		return "", fmt.Errorf("publish media container: %w", err)
	}
	p.log.Info().Str("post_id", postID).Msg("instagram post published")
	return postID, nil
}

func (p *GraphPublisher) createContainer(ctx context.Context, imageURL, caption string) (string, error) {
	url := fmt.Sprintf("%s/%s/media", p.baseURL, p.userID)
	payload := map[string]interface{}{
		"image_url":    imageURL,
		"caption":      caption,
		"access_token": p.accessToken,
	}
	return p.postForID(ctx, url, payload)
}

func (p *GraphPublisher) publishContainer(ctx context.Context, containerID string) (string, error) {
	url := fmt.Sprintf("%s/%s/media_publish", p.baseURL, p.userID)
	payload := map[string]interface{}{
		"creation_id":  containerID,
		"access_token": p.accessToken,
	}
	return p.postForID(ctx, url, payload)
}

func (p *GraphPublisher) postForID(ctx context.Context, url string, payload map[string]interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("graph api %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("graph api status %d", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if result.ID == "" {
		return "", errors.New("graph api returned no id")
	}
	return result.ID, nil
}

package model

import "time"

// PublishedPost records a successful immediate publish to a platform.
type PublishedPost struct {
	ID             string    `json:"id"`
	PlatformPostID string    `json:"platform_post_id"`
	Platform       string    `json:"platform"`
	Caption        string    `json:"caption"`
	ImageURL       string    `json:"image_url"`
	CaptionLength  int       `json:"caption_length"`
	PostedAt       time.Time `json:"posted_at"`
}

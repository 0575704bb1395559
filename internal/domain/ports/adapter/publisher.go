package adapter

import "context"

type PublishRequest struct {
	Caption  string
	ImageURL string
}

// SocialPublisher performs a single platform publish call. Implementations
// are registered per platform name and must be safe for concurrent use.
type SocialPublisher interface {
	Platform() string
	Publish(ctx context.Context, req PublishRequest) (postID string, err error)
}

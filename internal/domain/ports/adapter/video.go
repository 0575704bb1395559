package adapter

import "context"

type VideoRequest struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string
}

// VideoOperation is the provider-opaque state of a long-running video job.
// Raw carries the provider-native operation handle and is passed back
// unchanged on Poll.
type VideoOperation struct {
	Handle     string
	Done       bool
	ErrMessage string
	// ResultURI is set once Done: either a fetchable http(s) URI or a bare
	// provider file handle such as "files/abc123".
	ResultURI string
	Raw       any
}

type VideoGenerator interface {
	Submit(ctx context.Context, req VideoRequest) (*VideoOperation, error)
	Poll(ctx context.Context, op *VideoOperation) (*VideoOperation, error)

	// Download fetches the bytes behind a provider file handle.
	Download(ctx context.Context, fileHandle string) ([]byte, error)
}

package model

type VideoResultKind string

const (
	// VideoResultURL means the provider returned a directly fetchable URI.
	VideoResultURL VideoResultKind = "url"
	// VideoResultFile means the provider returned a file handle that must be
	// downloaded through the provider's file API.
	VideoResultFile VideoResultKind = "file"
)

type VideoResult struct {
	Kind       VideoResultKind `json:"kind"`
	URL        string          `json:"url,omitempty"`
	FileHandle string          `json:"file_handle,omitempty"`
	Model      string          `json:"model"`
	Polls      int             `json:"polls"`
}

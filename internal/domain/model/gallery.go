package model

import "time"

// GalleryImage is a generated asset living in the object store, joined with
// its product tags. Model is the bucket folder it was generated into
// (imagen-3, veo-3, ...).
type GalleryImage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	Model     string    `json:"model"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []*Tag    `json:"tags"`
}

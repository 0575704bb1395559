package model

type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

package model

import "time"

type PostStatus string

const (
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPosted    PostStatus = "posted"
	PostStatusCancelled PostStatus = "cancelled"
	PostStatusFailed    PostStatus = "failed"
)

// ScheduledPost is a social post waiting for (or past) its fire time.
// ImagePaths are object-store paths, resolved to public URLs at publish time.
type ScheduledPost struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Caption         string     `json:"caption"`
	SocialPlatforms []string   `json:"social_platforms"`
	ImagePaths      []string   `json:"image_paths"`
	ScheduledFor    time.Time  `json:"scheduled_for"`
	Status          PostStatus `json:"status"`
	PostedAt        *time.Time `json:"posted_at,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (p *ScheduledPost) HasPlatform(platform string) bool {
	for _, pl := range p.SocialPlatforms {
		if pl == platform {
			return true
		}
	}
	return false
}

type ScheduleStats struct {
	Total       int `json:"total"`
	Scheduled   int `json:"scheduled"`
	Failed      int `json:"failed"`
	PostedToday int `json:"posted_today"`
}

// ComputeScheduleStats aggregates over the full post list. "Posted today"
// counts posts whose PostedAt falls on now's calendar day in now's location.
func ComputeScheduleStats(posts []*ScheduledPost, now time.Time) ScheduleStats {
	s := ScheduleStats{Total: len(posts)}
	y, m, d := now.Date()
	for _, p := range posts {
		switch p.Status {
		case PostStatusScheduled:
			s.Scheduled++
		case PostStatusFailed:
			s.Failed++
		case PostStatusPosted:
			if p.PostedAt == nil {
				continue
			}
			py, pm, pd := p.PostedAt.In(now.Location()).Date()
			if py == y && pm == m && pd == d {
				s.PostedToday++
			}
		}
	}
	return s
}

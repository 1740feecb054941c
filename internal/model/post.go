package model

import "time"

// Comment lives inside its parent post, mirroring the persisted feed layout.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Post is a feed entry. Likes and Comments are denormalized onto the post so
// the whole feed round-trips as a single blob; the author's feedCount and
// commentCount counters are maintained separately on the User record.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"commentsList"`
	Timestamp time.Time `json:"timestamp"`
}

// LikedBy reports whether the given user has liked the post.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

package models

// Post represents a blog post joined with its author's username.
// Timestamps are RFC3339 UTC strings.
type Post struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  int    `json:"author_id"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// IsOwnedBy reports whether userID authored the post.
func (p Post) IsOwnedBy(userID int) bool {
	return p.AuthorID == userID
}

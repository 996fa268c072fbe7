package post

import "github.com/avencillado/blognest/internal/model"

// Post is a blog entry owned by a single author.
type Post struct {
	model.Model
	Title    string
	Content  string
	Image    *string
	Likes    int
	AuthorID string
}

package post

const (
	MsgPostCreated  = "Post created."
	MsgPostUpdated  = "Post updated."
	MsgPostDeleted  = "Post deleted."
	MsgPostNotFound = "Post not found."
)

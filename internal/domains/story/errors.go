package story

import "errors"

var (
	ErrStoryNotFound      = errors.New("story not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAlreadyRated       = errors.New("user already rated this story")
	ErrUnauthorizedAction = errors.New("unauthorized action")
)

package app

import "errors"

// Caller is the authenticated identity attached to a request by the
// transport layer. Services receive it explicitly; a nil Caller means
// the request is anonymous.
type Caller struct {
	UserID   uint
	Username string
}

var (
	ErrInvalidInput     = errors.New("username and password are required")
	ErrUsernameExists   = errors.New("username already exists")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUserNotFound     = errors.New("user not found")
	ErrMemeNotFound     = errors.New("meme not found")
	ErrTagNotFound      = errors.New("tag not found or not owned by user")
	ErrTagNotOnMeme     = errors.New("tag not found on meme")
	ErrBlankTagName     = errors.New("tag name cannot be blank")
	ErrInvalidColor     = errors.New("invalid color format")
)

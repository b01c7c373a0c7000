package services

import "errors"

// Domain errors surfaced by the services layer. Handlers map these to HTTP
// statuses with errors.Is; anything else is a storage failure (500).
var (
	ErrValidation    = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyMember = errors.New("already a member of the group")
	ErrNotMember     = errors.New("not a member of the group")
	ErrGroupFull     = errors.New("group is full")
	ErrModelOutput   = errors.New("model returned unparsable output")
)

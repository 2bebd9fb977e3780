package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrBoardNotFound   = errors.New("board not found")
	ErrModuleDisabled  = errors.New("module is not enabled for the project")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPageOutOfRange  = errors.New("page out of range")
	ErrAlreadyJoined   = errors.New("user already has this role in the meeting")
)

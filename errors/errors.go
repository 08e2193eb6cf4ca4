package errors

import "fmt"

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrConflict      = fmt.Errorf("identifier already in use")
	ErrDenied        = fmt.Errorf("permission denied")
	ErrAlreadyMember = fmt.Errorf("already a member of the conversation")
	ErrInvalidNick   = fmt.Errorf("nickname should be between 1 and 31 characters")
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrEmptyWords    = fmt.Errorf("no words have been found")
)

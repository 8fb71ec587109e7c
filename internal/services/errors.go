package services

import "errors"

// Protocol-level rejections. Store-level ones (not-found, already-joined,
// already-acted, PIN exhaustion) live in the room package.
var (
	ErrNotHost           = errors.New("only the room host may do this")
	ErrRoomNotJoinable   = errors.New("room is not accepting participants")
	ErrRoomNotActive     = errors.New("room is not active")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrQuestionNotActive = errors.New("no active question with this index")
	ErrAlreadyAnswered   = errors.New("already answered this question")
)

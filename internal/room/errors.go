package room

import "errors"

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadyJoined       = errors.New("already joined this room")
	ErrAlreadyActed        = errors.New("already acted this round")
	ErrPINExhausted        = errors.New("could not allocate a unique room PIN")
)

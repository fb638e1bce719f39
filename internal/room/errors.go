package room

import "errors"

var (
	ErrRoomNameEmpty       = errors.New("room name is empty")
	ErrRoomProbeFailed     = errors.New("room probe failed")
	ErrRoomCreateFailed    = errors.New("room create failed")
	ErrUnknownProbeOutcome = errors.New("unknown room probe outcome")
)

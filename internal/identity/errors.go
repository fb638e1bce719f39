package identity

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid signing credentials")
	ErrRoomNameEmpty      = errors.New("room name is empty")
	ErrIdentityEmpty      = errors.New("participant identity is empty")
)

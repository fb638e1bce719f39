package protocol

import "context"

// RoomName is the unique name of a room in the remote provider. It is passed
// through verbatim.
type RoomName = string

type RoomType string

const RoomTypeGroup RoomType = "group"

// RoomProbe is the outcome of looking a room up by name. Failures other than
// "not found" are reported as an error next to RoomProbeUnknown.
type RoomProbe int

const (
	RoomProbeUnknown RoomProbe = iota
	RoomProbeFound
	RoomProbeNotFound
)

func (p RoomProbe) String() string {
	switch p {
	case RoomProbeFound:
		return "found"
	case RoomProbeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type RoomCreation int

const (
	RoomCreationUnknown RoomCreation = iota
	RoomCreated
	RoomAlreadyExists
)

func (c RoomCreation) String() string {
	switch c {
	case RoomCreated:
		return "created"
	case RoomAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

type RoomCreateOption struct {
	UniqueName RoomName
	Type       RoomType
}

// RoomProvider is the remote video service that owns room state.
type RoomProvider interface {
	ProbeRoom(ctx context.Context, name RoomName) (RoomProbe, error)
	CreateRoom(ctx context.Context, option RoomCreateOption) (RoomCreation, error)
}

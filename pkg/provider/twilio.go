package provider

import (
	"context"
	"errors"
	"net/url"

	twilioclient "github.com/twilio/twilio-go/client"
	video "github.com/twilio/twilio-go/rest/video/v1"

	"github.com/romashorodok/room-token-server/pkg/executils"
	"github.com/romashorodok/room-token-server/pkg/protocol"
)

// VideoRoomAPI is the part of the Twilio Video v1 service used here.
// *video.ApiService satisfies it.
type VideoRoomAPI interface {
	FetchRoom(Sid string) (*video.VideoV1Room, error)
	CreateRoom(params *video.CreateRoomParams) (*video.VideoV1Room, error)
}

type TwilioRoomProvider struct {
	api VideoRoomAPI
}

func asRestError(err error) (*twilioclient.TwilioRestError, bool) {
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		return restErr, true
	}
	return nil, false
}

func wrapProviderError(op string, err error) error {
	if restErr, ok := asRestError(err); ok {
		return &ProviderError{Op: op, Code: restErr.Code, Status: restErr.Status, Err: err}
	}
	return &ProviderError{Op: op, Err: err}
}

// ProbeRoom fetches the room by unique name. Twilio accepts either the room
// SID or its unique name on the fetch endpoint. The SDK splices the value into
// the URL path verbatim, so the name is escaped to stay one path segment.
func (p *TwilioRoomProvider) ProbeRoom(ctx context.Context, name protocol.RoomName) (protocol.RoomProbe, error) {
	room, err := executils.Await(ctx, func() (*video.VideoV1Room, error) {
		return p.api.FetchRoom(url.PathEscape(name))
	})
	if err != nil {
		if restErr, ok := asRestError(err); ok && restErr.Code == TWILIO_CODE_NOT_FOUND {
			return protocol.RoomProbeNotFound, nil
		}
		return protocol.RoomProbeUnknown, wrapProviderError("fetch room", err)
	}

	if room == nil {
		return protocol.RoomProbeUnknown, &ProviderError{Op: "fetch room", Err: ErrUnexpectedResponse}
	}
	return protocol.RoomProbeFound, nil
}

func (p *TwilioRoomProvider) CreateRoom(ctx context.Context, option protocol.RoomCreateOption) (protocol.RoomCreation, error) {
	params := &video.CreateRoomParams{}
	params.SetUniqueName(option.UniqueName)
	params.SetType(string(option.Type))

	_, err := executils.Await(ctx, func() (*video.VideoV1Room, error) {
		return p.api.CreateRoom(params)
	})
	if err != nil {
		if restErr, ok := asRestError(err); ok && restErr.Code == TWILIO_CODE_ROOM_EXISTS {
			return protocol.RoomAlreadyExists, nil
		}
		return protocol.RoomCreationUnknown, wrapProviderError("create room", err)
	}
	return protocol.RoomCreated, nil
}

var _ protocol.RoomProvider = (*TwilioRoomProvider)(nil)

func NewTwilioRoomProvider(api VideoRoomAPI) *TwilioRoomProvider {
	return &TwilioRoomProvider{api: api}
}

package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/romashorodok/room-token-server/pkg/protocol"
	"go.uber.org/fx"
)

// RoomService makes sure a room exists in the remote provider before anyone
// gets a token for it. It keeps no state, concurrent callers for the same
// name are reconciled by the provider's "already exists" answer.
type RoomService struct {
	provider protocol.RoomProvider
	logger   *slog.Logger
}

// EnsureRoom probes for the room once and creates it only when the provider
// reports it as not found. Every other probe failure is returned as is.
func (s *RoomService) EnsureRoom(ctx context.Context, roomName protocol.RoomName) error {
	if roomName == "" {
		return ErrRoomNameEmpty
	}

	probe, err := s.provider.ProbeRoom(ctx, roomName)
	if err != nil {
		s.logger.Error("room lookup failed",
			slog.String("room", roomName),
			slog.String("outcome", probe.String()),
			slog.String("err", err.Error()),
		)
		return errors.Join(ErrRoomProbeFailed, err)
	}

	switch probe {
	case protocol.RoomProbeFound:
		s.logger.Debug("room exists",
			slog.String("room", roomName),
			slog.String("outcome", probe.String()),
		)
		return nil
	case protocol.RoomProbeNotFound:
		return s.createRoom(ctx, roomName)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProbeOutcome, probe)
	}
}

func (s *RoomService) createRoom(ctx context.Context, roomName protocol.RoomName) error {
	creation, err := s.provider.CreateRoom(ctx, protocol.RoomCreateOption{
		UniqueName: roomName,
		Type:       protocol.RoomTypeGroup,
	})
	if err != nil {
		s.logger.Error("room create failed",
			slog.String("room", roomName),
			slog.String("outcome", creation.String()),
			slog.String("err", err.Error()),
		)
		return errors.Join(ErrRoomCreateFailed, err)
	}

	switch creation {
	case protocol.RoomCreated:
	case protocol.RoomAlreadyExists:
		// Lost the race against another request for the same name.
	default:
		return fmt.Errorf("%w: %s", ErrRoomCreateFailed, creation)
	}

	s.logger.Info("room provisioned",
		slog.String("room", roomName),
		slog.String("outcome", creation.String()),
	)
	return nil
}

type NewRoomServiceParams struct {
	fx.In

	Provider protocol.RoomProvider
	Logger   *slog.Logger
}

func NewRoomService(params NewRoomServiceParams) *RoomService {
	return &RoomService{
		provider: params.Provider,
		logger:   params.Logger,
	}
}

package room

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/romashorodok/room-token-server/pkg/protocol"
	"github.com/romashorodok/room-token-server/pkg/provider/providertest"
)

func newTestRoomService(provider protocol.RoomProvider) *RoomService {
	return NewRoomService(NewRoomServiceParams{
		Provider: provider,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestEnsureRoomCreatesMissingRoom(t *testing.T) {
	provider := providertest.NewProvider()
	service := newTestRoomService(provider)

	require.NoError(t, service.EnsureRoom(context.Background(), "standup-mon"))

	assert.EqualValues(t, 1, provider.Probes.Load())
	assert.EqualValues(t, 1, provider.Creates.Load())
	roomType, exist := provider.Room("standup-mon")
	assert.True(t, exist)
	assert.Equal(t, protocol.RoomTypeGroup, roomType)
}

func TestEnsureRoomExistingRoomSkipsCreate(t *testing.T) {
	provider := providertest.NewProvider()
	service := newTestRoomService(provider)

	require.NoError(t, service.EnsureRoom(context.Background(), "standup-mon"))
	require.NoError(t, service.EnsureRoom(context.Background(), "standup-mon"))

	assert.EqualValues(t, 2, provider.Probes.Load())
	assert.EqualValues(t, 1, provider.Creates.Load())
}

func TestEnsureRoomEmptyName(t *testing.T) {
	provider := providertest.NewProvider()

	err := newTestRoomService(provider).EnsureRoom(context.Background(), "")

	assert.ErrorIs(t, err, ErrRoomNameEmpty)
	assert.Zero(t, provider.Probes.Load())
	assert.Zero(t, provider.Creates.Load())
}

func TestEnsureRoomProbeFailureIsNotTreatedAsMissing(t *testing.T) {
	errUnauthorized := errors.New("authenticate: code 20003")
	provider := providertest.NewProvider()
	provider.ProbeErr = errUnauthorized

	err := newTestRoomService(provider).EnsureRoom(context.Background(), "standup-mon")

	assert.ErrorIs(t, err, ErrRoomProbeFailed)
	assert.ErrorIs(t, err, errUnauthorized)
	assert.Zero(t, provider.Creates.Load())
}

func TestEnsureRoomCreateFailurePropagates(t *testing.T) {
	errQuota := errors.New("quota exceeded")
	provider := providertest.NewProvider()
	provider.CreateErr = errQuota

	err := newTestRoomService(provider).EnsureRoom(context.Background(), "standup-mon")

	assert.ErrorIs(t, err, ErrRoomCreateFailed)
	assert.ErrorIs(t, err, errQuota)
	assert.EqualValues(t, 1, provider.Creates.Load())
}

func TestEnsureRoomCanceledContext(t *testing.T) {
	provider := providertest.NewProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestRoomService(provider).EnsureRoom(ctx, "standup-mon")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, provider.Creates.Load())
}

type stubProvider struct {
	probe    protocol.RoomProbe
	creation protocol.RoomCreation
}

func (s stubProvider) ProbeRoom(context.Context, protocol.RoomName) (protocol.RoomProbe, error) {
	return s.probe, nil
}

func (s stubProvider) CreateRoom(context.Context, protocol.RoomCreateOption) (protocol.RoomCreation, error) {
	return s.creation, nil
}

func TestEnsureRoomUnknownOutcomes(t *testing.T) {
	for name, testCase := range map[string]struct {
		provider stubProvider
		wantErr  error
	}{
		"unknown probe": {
			provider: stubProvider{probe: protocol.RoomProbeUnknown},
			wantErr:  ErrUnknownProbeOutcome,
		},
		"unknown creation": {
			provider: stubProvider{probe: protocol.RoomProbeNotFound, creation: protocol.RoomCreationUnknown},
			wantErr:  ErrRoomCreateFailed,
		},
		"already exists": {
			provider: stubProvider{probe: protocol.RoomProbeNotFound, creation: protocol.RoomAlreadyExists},
		},
	} {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			err := newTestRoomService(testCase.provider).EnsureRoom(context.Background(), "room")
			if testCase.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestEnsureRoomConcurrentCallersSameName(t *testing.T) {
	const callers = 8

	provider := providertest.NewProvider()

	// Hold every caller between a not-found probe and its create call so that
	// all of them race on creation.
	var barrier sync.WaitGroup
	barrier.Add(callers)
	provider.BeforeCreate = func() {
		barrier.Done()
		barrier.Wait()
	}

	service := newTestRoomService(provider)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			return service.EnsureRoom(ctx, "standup-mon")
		})
	}

	require.NoError(t, g.Wait())
	assert.EqualValues(t, callers, provider.Probes.Load())
	assert.EqualValues(t, callers, provider.Creates.Load())
	assert.EqualValues(t, 1, provider.Created.Load())
}

type logRecord struct {
	Msg     string `json:"msg"`
	Room    string `json:"room"`
	Outcome string `json:"outcome"`
}

func TestEnsureRoomLogsOutcome(t *testing.T) {
	errUnauthorized := errors.New("authenticate: code 20003")

	for name, testCase := range map[string]struct {
		provider func() protocol.RoomProvider
		want     logRecord
	}{
		"found": {
			provider: func() protocol.RoomProvider {
				provider := providertest.NewProvider()
				provider.Seed("standup-mon")
				return provider
			},
			want: logRecord{Msg: "room exists", Room: "standup-mon", Outcome: "found"},
		},
		"created": {
			provider: func() protocol.RoomProvider { return providertest.NewProvider() },
			want:     logRecord{Msg: "room provisioned", Room: "standup-mon", Outcome: "created"},
		},
		"already exists": {
			provider: func() protocol.RoomProvider {
				return stubProvider{probe: protocol.RoomProbeNotFound, creation: protocol.RoomAlreadyExists}
			},
			want: logRecord{Msg: "room provisioned", Room: "standup-mon", Outcome: "already_exists"},
		},
		"lookup failure": {
			provider: func() protocol.RoomProvider {
				provider := providertest.NewProvider()
				provider.ProbeErr = errUnauthorized
				return provider
			},
			want: logRecord{Msg: "room lookup failed", Room: "standup-mon", Outcome: "unknown"},
		},
		"create failure": {
			provider: func() protocol.RoomProvider {
				provider := providertest.NewProvider()
				provider.CreateErr = errUnauthorized
				return provider
			},
			want: logRecord{Msg: "room create failed", Room: "standup-mon", Outcome: "unknown"},
		},
	} {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			service := NewRoomService(NewRoomServiceParams{
				Provider: testCase.provider(),
				Logger:   slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
			})

			_ = service.EnsureRoom(context.Background(), "standup-mon")

			var records []logRecord
			decoder := json.NewDecoder(&buf)
			for decoder.More() {
				var record logRecord
				require.NoError(t, decoder.Decode(&record))
				records = append(records, record)
			}
			assert.Equal(t, []logRecord{testCase.want}, records)
		})
	}
}

// Package providertest provides an in-memory protocol.RoomProvider for tests.
package providertest

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/romashorodok/room-token-server/pkg/protocol"
)

// Provider keeps rooms in memory and answers the way the remote service does:
// probing an unknown name yields RoomProbeNotFound, creating an existing name
// yields RoomAlreadyExists.
type Provider struct {
	mu    sync.Mutex
	rooms map[protocol.RoomName]protocol.RoomType

	Probes  atomic.Int64
	Creates atomic.Int64
	// Created counts create calls that actually added a room.
	Created atomic.Int64

	// ProbeErr and CreateErr, when set, fail the respective call.
	ProbeErr  error
	CreateErr error

	// BeforeCreate runs after a not-found probe answer reached the caller and
	// before the create call mutates state. Tests use it to line up races.
	BeforeCreate func()
}

func (p *Provider) ProbeRoom(ctx context.Context, name protocol.RoomName) (protocol.RoomProbe, error) {
	p.Probes.Inc()
	if err := ctx.Err(); err != nil {
		return protocol.RoomProbeUnknown, err
	}
	if p.ProbeErr != nil {
		return protocol.RoomProbeUnknown, p.ProbeErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exist := p.rooms[name]; exist {
		return protocol.RoomProbeFound, nil
	}
	return protocol.RoomProbeNotFound, nil
}

func (p *Provider) CreateRoom(ctx context.Context, option protocol.RoomCreateOption) (protocol.RoomCreation, error) {
	p.Creates.Inc()
	if p.BeforeCreate != nil {
		p.BeforeCreate()
	}
	if err := ctx.Err(); err != nil {
		return protocol.RoomCreationUnknown, err
	}
	if p.CreateErr != nil {
		return protocol.RoomCreationUnknown, p.CreateErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exist := p.rooms[option.UniqueName]; exist {
		return protocol.RoomAlreadyExists, nil
	}
	p.rooms[option.UniqueName] = option.Type
	p.Created.Inc()
	return protocol.RoomCreated, nil
}

// Room reports whether name exists and with which type.
func (p *Provider) Room(name protocol.RoomName) (protocol.RoomType, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	roomType, exist := p.rooms[name]
	return roomType, exist
}

// Seed adds rooms without counting them as created.
func (p *Provider) Seed(names ...protocol.RoomName) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, name := range names {
		p.rooms[name] = protocol.RoomTypeGroup
	}
}

var _ protocol.RoomProvider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{
		rooms: make(map[protocol.RoomName]protocol.RoomType),
	}
}

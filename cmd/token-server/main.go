package main

import (
	"github.com/romashorodok/room-token-server/internal/health"
	"github.com/romashorodok/room-token-server/internal/identity"
	"github.com/romashorodok/room-token-server/internal/room"
	"github.com/romashorodok/room-token-server/internal/static"
	"github.com/romashorodok/room-token-server/internal/token"
	"github.com/romashorodok/room-token-server/pkg/protocol"
	"github.com/romashorodok/room-token-server/pkg/service"
	"go.uber.org/fx"
)

func app() fx.Option {
	return fx.Options(
		service.ConfigModule,
		service.LoggerModule,
		service.TwilioModule,

		fx.Provide(
			identity.NewSigningCredentials,
			identity.NewTokenService,
			room.NewRoomService,

			protocol.AsHttpController(token.NewTokenController),
			protocol.AsHttpController(health.NewHealthController),
			protocol.AsHttpController(static.NewStaticController),
		),

		// Bad credentials stop the process here instead of failing requests.
		fx.Invoke(func(identity.SigningCredentials) {}),

		service.HttpModule,
	)
}

func main() {
	fx.New(app()).Run()
}

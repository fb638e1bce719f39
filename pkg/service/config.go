package service

import (
	"github.com/romashorodok/room-token-server/pkg/variables"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config", fx.Provide(
	variables.Load,
))

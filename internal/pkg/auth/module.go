package auth

import (
	"go.uber.org/fx"

	"github.com/devxankit/Electrici-toys/internal/config"
)

// Module provides the token strategy via fx.
var Module = fx.Options(
	fx.Provide(newTokenStrategy),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.AuthSecret, Options{TTL: p.Config.AuthTokenTTL})
}

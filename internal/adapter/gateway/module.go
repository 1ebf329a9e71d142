package gateway

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/devxankit/Electrici-toys/internal/config"
	"github.com/devxankit/Electrici-toys/internal/usecase"
)

// Module exposes the payment gateway client to the fx graph.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(func(c *HTTPClient) usecase.PaymentGateway { return c }),
)

type clientParams struct {
	fx.In

	Config  *config.Config
	Tracing trace.TracerProvider
	Logger  *slog.Logger
}

func newClient(p clientParams) (*HTTPClient, error) {
	return NewHTTPClient(Options{
		BaseURL:   p.Config.GatewayAddress,
		KeyID:     p.Config.GatewayKeyID,
		KeySecret: p.Config.GatewayKeySecret,
		Timeout:   p.Config.GatewayTimeout,
	}, p.Tracing.Tracer("github.com/devxankit/Electrici-toys/internal/adapter/gateway"), p.Logger)
}

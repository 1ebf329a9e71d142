package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/devxankit/Electrici-toys/internal/config"
)

// Module provides the Kafka publisher. It resolves to nil when no brokers
// are configured and the outbox relay stays idle.
var Module = fx.Options(
	fx.Provide(newPublisherFromConfig),
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisherFromConfig(p publisherParams) *KafkaPublisher {
	if !p.Config.RelayEnabled() {
		p.Logger.Info("kafka brokers not configured, order events stay in the outbox")
		return nil
	}
	publisher := NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.KafkaTopic, p.Logger)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

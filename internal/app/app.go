package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/devxankit/Electrici-toys/internal/adapter/events"
	"github.com/devxankit/Electrici-toys/internal/config"
	"github.com/devxankit/Electrici-toys/internal/domain/repository"
	"github.com/devxankit/Electrici-toys/internal/server/http/handlers"
	"github.com/devxankit/Electrici-toys/internal/storage/postgres"
	"github.com/devxankit/Electrici-toys/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		func(f *StoreFacade) handlers.StoreFacade { return f },
		func(s *postgres.Storage) HealthChecker { return s },
		newHTTPServer,
		newOutboxRelay,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type relayParams struct {
	fx.In

	Outbox    repository.OutboxRepository
	Publisher *events.KafkaPublisher `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

func newOutboxRelay(p relayParams) *worker.OutboxRelay {
	var publisher worker.Publisher
	if p.Publisher != nil {
		publisher = p.Publisher
	}
	return worker.NewOutboxRelay(
		p.Outbox,
		publisher,
		p.Config.OutboxPollInterval,
		p.Config.OutboxBatchSize,
		p.Config.OutboxWorkers,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Relay      *worker.OutboxRelay
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting order service",
				slog.String("addr", p.Server.Addr),
				slog.Bool("outbox_relay", p.Relay.Enabled()),
			)
			p.Relay.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Relay.Stop()
			p.Logger.Info("order service stopped")
			return nil
		},
	})
}

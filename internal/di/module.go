package di

import (
	"go.uber.org/fx"

	"github.com/devxankit/Electrici-toys/internal/adapter/events"
	"github.com/devxankit/Electrici-toys/internal/adapter/gateway"
	"github.com/devxankit/Electrici-toys/internal/app"
	"github.com/devxankit/Electrici-toys/internal/config"
	"github.com/devxankit/Electrici-toys/internal/logger"
	"github.com/devxankit/Electrici-toys/internal/metrics"
	"github.com/devxankit/Electrici-toys/internal/pkg/auth"
	"github.com/devxankit/Electrici-toys/internal/server/http/router"
	"github.com/devxankit/Electrici-toys/internal/storage/postgres"
	"github.com/devxankit/Electrici-toys/internal/tracing"
	"github.com/devxankit/Electrici-toys/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		tracing.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		events.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

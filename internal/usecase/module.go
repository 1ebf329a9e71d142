package usecase

import (
	"go.uber.org/fx"

	"github.com/devxankit/Electrici-toys/internal/config"
)

// Module provides order use cases to the fx container.
var Module = fx.Provide(
	newSettings,
	NewPlacementUseCase,
	NewPaymentUseCase,
	NewStatusUseCase,
	NewQueryUseCase,
)

func newSettings(cfg *config.Config) Settings {
	return Settings{
		Currency:          cfg.GatewayCurrency,
		CatalogTimeout:    cfg.CatalogTimeout,
		LookupConcurrency: cfg.LookupConcurrency,
	}
}

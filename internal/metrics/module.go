package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/devxankit/Electrici-toys/internal/usecase"
)

// Module provides a private registry and the recorder bound as the use case
// observer.
var Module = fx.Options(
	fx.Provide(
		newRegistry,
		NewRecorder,
		func(r *Recorder) usecase.Observer { return r },
	),
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

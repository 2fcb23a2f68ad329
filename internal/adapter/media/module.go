package media

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/snackshop/internal/config"
	"github.com/polkiloo/snackshop/internal/usecase"
)

// Module exposes the media prober to the fx graph. Probing is disabled when
// no asset host is configured.
var Module = fx.Provide(newProber)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newProber(p clientParams) (usecase.MediaProber, error) {
	if p.Config.MediaProbeAddress == "" {
		return nil, nil
	}
	return NewHTTPClient(p.Config.MediaProbeAddress, p.Logger)
}

package debt

import (
	"github.com/haroun39/facteur/internal/debt/service"
	"go.uber.org/fx"
)

var Module = fx.Module("debt.service",
	fx.Provide(service.NewService),
)

package report

import (
	"github.com/haroun39/facteur/internal/report/domain"
	"github.com/haroun39/facteur/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(domain.NewSummaryCache),
	fx.Provide(service.NewService),
)

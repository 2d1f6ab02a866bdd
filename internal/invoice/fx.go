package invoice

import (
	"github.com/DevHusayn/InvoicePro/internal/invoice/render"
	"github.com/DevHusayn/InvoicePro/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewPDFRenderer),
	fx.Provide(service.NewService),
)

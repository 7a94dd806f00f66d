package category

import (
	"github.com/railzwaylabs/backoffice/internal/category/service"
	"go.uber.org/fx"
)

var Module = fx.Module("category.service",
	fx.Provide(service.New),
)

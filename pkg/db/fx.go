package db

import (
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("db",
	fx.Provide(
		NewRetryPolicy,
		New,
		repository.NewStore,
	),
)

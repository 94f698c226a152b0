package billboard

import (
	"github.com/smallbiznis/storeadmin/internal/billboard/repository"
	"github.com/smallbiznis/storeadmin/internal/billboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billboard.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package color

import (
	"github.com/smallbiznis/storeadmin/internal/color/repository"
	"github.com/smallbiznis/storeadmin/internal/color/service"
	"go.uber.org/fx"
)

var Module = fx.Module("color.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

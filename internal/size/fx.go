package size

import (
	"github.com/smallbiznis/storeadmin/internal/size/repository"
	"github.com/smallbiznis/storeadmin/internal/size/service"
	"go.uber.org/fx"
)

var Module = fx.Module("size.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package migration

import (
	"github.com/smallbiznis/storeadmin/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg db.Config, log *zap.Logger) error {
		if cfg.Type == db.TypeSQLite {
			log.Info("applying embedded schema", zap.String("dialect", cfg.Type))
			return ApplySchema(conn)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		log.Info("running migrations", zap.String("dialect", cfg.Type))
		return RunMigrations(sqlDB, cfg.Type)
	}),
)

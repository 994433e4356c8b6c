package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"nomadai/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Invoke(registerDBHooks))

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}

func registerDBHooks(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db)
	}))
}

package bootstrap

import (
	"court-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.WithLogger(NewFxEventLogger),
	ConfigModule,
	LoggerModule,
	TracingModule,
	DBModule,
	StoreModule,
	MessagingModule,
	JWTModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)

package mock

//go:generate mockgen -source=../../internal/usecase/commands/auth.go -destination=commands/auth.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/commands/booking.go -destination=commands/booking.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/commands/member.go -destination=commands/member.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/queries/member.go -destination=queries/member.go -package=queriesmock
//go:generate mockgen -source=../../internal/usecase/queries/booking.go -destination=queries/booking.go -package=queriesmock
//go:generate mockgen -source=../../internal/usecase/queries/catalog.go -destination=queries/catalog.go -package=queriesmock
//go:generate mockgen -source=../../internal/usecase/shared/ports.go -destination=shared/ports.go -package=sharedmock
//go:generate mockgen -source=../../internal/usecase/shared/uow.go -destination=shared/uow.go -package=sharedmock

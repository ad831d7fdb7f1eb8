//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"quadra/config"
	"quadra/infras/jwt"
	"quadra/infras/kafka"
	"quadra/infras/otel"
	"quadra/infras/postgres"
	"quadra/infras/redis"
	"quadra/infras/s3"
	"quadra/permissions"
	"quadra/shared/cache"
	"quadra/transport/http"
	"quadra/transport/http/middleware"
	"quadra/transport/http/router"

	authService "quadra/internal/domains/auth/service"
	courtRepository "quadra/internal/domains/court/repository"
	courtService "quadra/internal/domains/court/service"
	reservationRepository "quadra/internal/domains/reservation/repository"
	reservationService "quadra/internal/domains/reservation/service"
	scheduleRepository "quadra/internal/domains/schedule/repository"
	scheduleService "quadra/internal/domains/schedule/service"
	userRepository "quadra/internal/domains/user/repository"
	userService "quadra/internal/domains/user/service"

	authHandler "quadra/internal/handlers/auth"
	courtHandler "quadra/internal/handlers/court"
	reservationHandler "quadra/internal/handlers/reservation"
	userHandler "quadra/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var courtDomain = wire.NewSet(
	courtRepository.New,
	courtService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var domains = wire.NewSet(
	authDomain,
	courtDomain,
	scheduleDomain,
	reservationDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	courtHandler.New,
	reservationHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

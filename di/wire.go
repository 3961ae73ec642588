//go:build wireinject
// +build wireinject

package di

import (
	"solireserve/config"
	"solireserve/infras/jwt"
	"solireserve/infras/kafka"
	"solireserve/infras/metrics"
	"solireserve/infras/otel"
	"solireserve/infras/postgres"
	"solireserve/infras/redis"
	"solireserve/infras/s3"
	"solireserve/internal/domains/process/lifecycle"
	"solireserve/internal/handlers/event"
	"solireserve/permissions"
	"solireserve/shared/cache"
	"solireserve/transport/http"
	"solireserve/transport/http/middleware"
	"solireserve/transport/http/router"

	conventionRepository "solireserve/internal/domains/convention/repository"
	conventionService "solireserve/internal/domains/convention/service"
	hotelRepository "solireserve/internal/domains/hotel/repository"
	hotelService "solireserve/internal/domains/hotel/service"
	operatorRepository "solireserve/internal/domains/operator/repository"
	operatorService "solireserve/internal/domains/operator/service"
	processRepository "solireserve/internal/domains/process/repository"
	processService "solireserve/internal/domains/process/service"
	reportRepository "solireserve/internal/domains/report/repository"
	reportService "solireserve/internal/domains/report/service"
	reservationRepository "solireserve/internal/domains/reservation/repository"
	reservationService "solireserve/internal/domains/reservation/service"
	roomRepository "solireserve/internal/domains/room/repository"
	roomService "solireserve/internal/domains/room/service"

	conventionHandler "solireserve/internal/handlers/convention"
	hotelHandler "solireserve/internal/handlers/hotel"
	operatorHandler "solireserve/internal/handlers/operator"
	processHandler "solireserve/internal/handlers/process"
	reportHandler "solireserve/internal/handlers/report"
	reservationHandler "solireserve/internal/handlers/reservation"
	roomHandler "solireserve/internal/handlers/room"

	"github.com/google/wire"
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
	kafka.New,
	s3.New,
	metrics.NewDefault,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lifecycle.NewNumberGenerator,
	lifecycle.New,
)

var inventoryDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
	roomRepository.New,
	roomService.New,
	operatorRepository.New,
	operatorService.New,
)

var tariffDomain = wire.NewSet(
	conventionRepository.New,
	conventionService.New,
)

var reservationDomain = wire.NewSet(
	processRepository.New,
	processService.New,
	reservationRepository.New,
	reservationService.New,
	reportRepository.New,
	reportService.New,
)

var domains = wire.NewSet(
	inventoryDomain,
	tariffDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	hotelHandler.New,
	roomHandler.New,
	operatorHandler.New,
	conventionHandler.New,
	reservationHandler.New,
	processHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeWorker() *event.ProcessHandler {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		kafka.New,
		metrics.NewDefault,
		cache.NewRedisCache,
		event.NewProcessHandler,
	)

	return &event.ProcessHandler{}
}

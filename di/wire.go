//go:build wireinject
// +build wireinject

package di

import (
	"keel/config"
	"keel/infras/dynamo"
	"keel/infras/jwt"
	"keel/infras/otel"
	"keel/infras/redis"
	"keel/infras/s3"
	todoHandler "keel/internal/handlers/todo"
	"keel/shared/cache"
	"keel/transport/http"
	"keel/transport/http/middleware"
	"keel/transport/http/router"

	todoService "keel/internal/domains/todo/service"
	todoStore "keel/internal/domains/todo/store"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	dynamo.New,
	otel.New,
	redis.New,
	s3.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var todoDomain = wire.NewSet(
	todoStore.NewDynamo,
	todoService.New,
)

var domains = wire.NewSet(
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
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

package main

import (
	"context"
	"log/slog"
	"os"

	"healthboard/config"
	"healthboard/internal/delivery"
	"healthboard/internal/delivery/http"
	"healthboard/internal/delivery/http/middleware"
	"healthboard/internal/delivery/http/router/handler"
	"healthboard/internal/domain/repository"
	"healthboard/internal/infra/auth"
	logs "healthboard/internal/infra/log"
	"healthboard/internal/infra/persistence/memory"
	"healthboard/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newReadingRepository,
			newUserRepository,
			newWatchSampleRepository,
		),
	)
}

// newReadingRepository binds the in-memory store to its repository interface
func newReadingRepository() repository.ReadingRepository {
	return memory.NewReadingStore()
}

// newUserRepository binds the in-memory store to its repository interface
func newUserRepository() repository.UserRepository {
	return memory.NewUserStore()
}

// newWatchSampleRepository binds the in-memory store to its repository interface
func newWatchSampleRepository() repository.WatchSampleRepository {
	return memory.NewWatchSampleStore()
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewHealthService,
			impl.NewWatchService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewReadingHandler,
			handler.NewExportHandler,
			handler.NewWatchHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/repositories"
	"inventory-system/pkg/config"
	"inventory-system/pkg/middleware"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(cfg.Auth.BearerToken, logger)
	secureGroup := api.Group("", authMW.Auth)

	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	runEquipmentRouter(secureGroup, dbConn, txManager, logger)
	runEquipmentTypeRouter(secureGroup, dbConn, cacheRepo, logger, cfg)

	logger.Info("InitRouter: Создание маршрутов завершено")
}

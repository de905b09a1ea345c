package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
)

func runEquipmentTypeRouter(g *echo.Group, dbConn *pgxpool.Pool, cacheRepo repositories.CacheRepositoryInterface, logger *zap.Logger, cfg *config.Config) {
	var (
		etRepo    = repositories.NewEquipmentTypeRepository(dbConn)
		etService = services.NewEquipmentTypeService(etRepo, cacheRepo, logger, cfg.Cache.EquipmentTypesTTL)
		etCtrl    = controllers.NewEquipmentTypeController(etService, logger)
	)

	g.GET("/equipment-type", etCtrl.GetEquipmentTypes)
}

package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
)

func runEquipmentRouter(g *echo.Group, dbConn *pgxpool.Pool, txManager repositories.TxManagerInterface, logger *zap.Logger) {
	var (
		equipmentRepo = repositories.NewEquipmentRepository(dbConn, logger)
		etRepo        = repositories.NewEquipmentTypeRepository(dbConn)

		equipmentService = services.NewEquipmentService(equipmentRepo, etRepo, txManager, logger)
		importService    = services.NewEquipmentImportService(equipmentService, logger)

		equipmentCtrl = controllers.NewEquipmentController(equipmentService, logger)
		importCtrl    = controllers.NewEquipmentImportController(importService, logger)
	)

	g.GET("/equipment", equipmentCtrl.GetEquipments)
	g.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	g.POST("/equipment", equipmentCtrl.AddEquipment)
	g.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)
	g.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)

	g.POST("/equipment/import", importCtrl.ImportEquipment)
}

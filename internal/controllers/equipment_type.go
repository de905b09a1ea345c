package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type EquipmentTypeController struct {
	etService services.EquipmentTypeServiceInterface
	logger    *zap.Logger
}

func NewEquipmentTypeController(etService services.EquipmentTypeServiceInterface, logger *zap.Logger) *EquipmentTypeController {
	return &EquipmentTypeController{
		etService: etService,
		logger:    logger,
	}
}

func (c *EquipmentTypeController) GetEquipmentTypes(ctx echo.Context) error {
	page, limit := utils.ParsePaginationParams(ctx.Request().URL.Query())

	res, total, err := c.etService.GetEquipmentTypes(ctx.Request().Context(), page, limit)
	if err != nil {
		c.logger.Error("GetEquipmentTypes: ошибка при получении списка типов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список типов оборудования успешно получен", http.StatusOK, total)
}

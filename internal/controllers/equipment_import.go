package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type EquipmentImportController struct {
	importService *services.EquipmentImportService
	logger        *zap.Logger
}

func NewEquipmentImportController(importService *services.EquipmentImportService, logger *zap.Logger) *EquipmentImportController {
	return &EquipmentImportController{
		importService: importService,
		logger:        logger,
	}
}

// ImportEquipment принимает xlsx-файл (multipart поле "file") и type_id,
// под которым импортируются серийные номера.
func (c *EquipmentImportController) ImportEquipment(ctx echo.Context) error {
	typeID, err := strconv.ParseUint(ctx.FormValue("type_id"), 10, 64)
	if err != nil || typeID == 0 {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Не указан корректный type_id",
				err,
				map[string]interface{}{"type_id": ctx.FormValue("type_id")},
			),
			c.logger,
		)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не приложен файл импорта", err, nil),
			c.logger,
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.logger.Error("ImportEquipment: не удалось открыть файл", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	res, err := c.importService.ImportFromExcel(ctx.Request().Context(), src, typeID)
	if err != nil {
		c.logger.Error("ImportEquipment: импорт отклонен",
			zap.String("file", fileHeader.Filename), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Импорт оборудования завершен", http.StatusCreated)
}

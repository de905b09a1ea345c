package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	apperrors "inventory-system/pkg/errors"
)

// EquipmentImportService читает серийные номера из xlsx-файла и
// прогоняет их через обычное пакетное добавление: импорт не обходит
// ни маску, ни проверку уникальности.
type EquipmentImportService struct {
	equipmentService EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentImportService(equipmentService EquipmentServiceInterface, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{
		equipmentService: equipmentService,
		logger:           logger,
	}
}

// ImportFromExcel ищет на листах шапку с колонкой серийного номера
// (и, опционально, примечания), собирает кандидатов для типа typeID и
// отдает их в AddEquipment одним пакетом.
func (s *EquipmentImportService) ImportFromExcel(ctx context.Context, reader io.Reader, typeID uint64) (*dto.BatchAddResultDTO, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: не удалось открыть файл: %v", apperrors.ErrBadRequest, err)
	}
	defer f.Close()

	serialIdx, noteIdx := -1, -1
	headerRow := -1
	var finalRows [][]string

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for rIdx, row := range rows {
			rowStr := strings.ToLower(strings.Join(row, "|"))
			if !strings.Contains(rowStr, "серийн") && !strings.Contains(rowStr, "serial") {
				continue
			}

			for cIdx, colName := range row {
				cLower := strings.ToLower(strings.TrimSpace(colName))
				if strings.Contains(cLower, "серийн") || strings.Contains(cLower, "serial") {
					serialIdx = cIdx
				}
				if strings.Contains(cLower, "примечание") || strings.Contains(cLower, "note") {
					noteIdx = cIdx
				}
			}

			if serialIdx != -1 {
				finalRows = rows
				headerRow = rIdx
				s.logger.Info("ImportFromExcel: шапка найдена",
					zap.String("sheet", sheet), zap.Int("row", rIdx+1))
				break
			}
		}
		if headerRow != -1 {
			break
		}
	}

	if headerRow == -1 {
		return nil, fmt.Errorf("%w: не найдена колонка с серийным номером", apperrors.ErrBadRequest)
	}

	var candidates []dto.CreateEquipmentDTO
	for i := headerRow + 1; i < len(finalRows); i++ {
		row := finalRows[i]

		serial := safeCell(row, serialIdx)
		if serial == "" || isSummaryRow(serial) {
			continue
		}

		item := dto.CreateEquipmentDTO{
			TypeID:       typeID,
			SerialNumber: serial,
		}
		if note := safeCell(row, noteIdx); note != "" {
			item.Note = null.StringFrom(note)
		}
		candidates = append(candidates, item)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: в файле нет ни одного серийного номера", apperrors.ErrBadRequest)
	}

	return s.equipmentService.AddEquipment(ctx, candidates)
}

func safeCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isSummaryRow отсекает строки "итого/всего" в конце выгрузок.
func isSummaryRow(val string) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	return strings.Contains(v, "итого") || strings.Contains(v, "всего")
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/validation"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	AddEquipment(ctx context.Context, items []dto.CreateEquipmentDTO) (*dto.BatchAddResultDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, patch dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	etRepository        repositories.EquipmentTypeRepositoryInterface
	txManager           repositories.TxManagerInterface
	logger              *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	etRepository repositories.EquipmentTypeRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		etRepository:        etRepository,
		txManager:           txManager,
		logger:              logger,
	}
}

func equipmentEntityToDTO(entity *entities.Equipment) *dto.EquipmentDTO {
	if entity == nil {
		return nil
	}

	result := &dto.EquipmentDTO{
		ID:           entity.ID,
		TypeID:       entity.TypeID,
		SerialNumber: entity.SerialNumber,
		Note:         entity.Note,
		IsDeleted:    entity.IsDeleted,
	}

	if entity.CreatedAt != nil {
		createdAtStr := entity.CreatedAt.Format("2006-01-02 15:04:05")
		result.CreatedAt = &createdAtStr
	}
	if entity.UpdatedAt != nil {
		updatedAtStr := entity.UpdatedAt.Format("2006-01-02 15:04:05")
		result.UpdatedAt = &updatedAtStr
	}

	return result
}

func validatePagination(page, limit int) error {
	if page < 1 || limit < 1 {
		return fmt.Errorf("%w: page и limit должны быть больше нуля", apperrors.ErrBadRequest)
	}
	return nil
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	if err := validatePagination(filter.Page, filter.Limit); err != nil {
		return nil, 0, err
	}

	items, total, err := s.equipmentRepository.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]dto.EquipmentDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *equipmentEntityToDTO(&items[i]))
	}
	return dtos, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	entity, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return equipmentEntityToDTO(entity), nil
}

// isDomainError - отказ по самому кандидату, в отличие от
// инфраструктурного сбоя, который обрывает весь пакет.
func isDomainError(err error) bool {
	return errors.Is(err, apperrors.ErrBadRequest) ||
		errors.Is(err, apperrors.ErrEquipmentTypeNotFound) ||
		errors.Is(err, apperrors.ErrValidationFailed) ||
		errors.Is(err, apperrors.ErrDuplicateSerial)
}

// validateCandidate прогоняет одного кандидата через все доменные проверки
// внутри открытой транзакции: обязательные поля, существование типа,
// маска, уникальность (type_id, serial_number) среди активных записей.
func (s *EquipmentService) validateCandidate(ctx context.Context, tx pgx.Tx, item dto.CreateEquipmentDTO, excludeID uint64) error {
	if item.TypeID == 0 {
		return fmt.Errorf("%w: не заполнено обязательное поле type_id", apperrors.ErrBadRequest)
	}
	if item.SerialNumber == "" {
		return fmt.Errorf("%w: не заполнено обязательное поле serial_number", apperrors.ErrBadRequest)
	}

	et, err := s.etRepository.FindEquipmentType(ctx, tx, item.TypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEquipmentTypeNotFound) {
			return fmt.Errorf("%w: тип %d", apperrors.ErrEquipmentTypeNotFound, item.TypeID)
		}
		return err
	}

	mask, err := validation.CompileMask(et.SerialMask)
	if err != nil {
		// Маска типа сломана - это ошибка конфигурации справочника,
		// всплывает при валидации, а не как падение компилятора.
		return fmt.Errorf("%w: у типа %q некорректная маска: %v",
			apperrors.ErrValidationFailed, et.Name, err)
	}
	if !mask.Matches(item.SerialNumber) {
		return fmt.Errorf("%w: серийный номер %q не соответствует маске %q типа %q",
			apperrors.ErrValidationFailed, item.SerialNumber, et.SerialMask, et.Name)
	}

	unique, err := s.equipmentRepository.IsSerialUnique(ctx, tx, item.TypeID, item.SerialNumber, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return fmt.Errorf("%w: серийный номер %q занят для типа %q",
			apperrors.ErrDuplicateSerial, item.SerialNumber, et.Name)
	}

	return nil
}

// AddEquipment добавляет пакет кандидатов в одной транзакции.
// Отказ по одному элементу не обрывает остальные: сообщения копятся,
// успешные вставки идут сразу. Если не прошел ни один элемент,
// транзакция откатывается целиком.
func (s *EquipmentService) AddEquipment(ctx context.Context, items []dto.CreateEquipmentDTO) (*dto.BatchAddResultDTO, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: список оборудования пуст", apperrors.ErrBadRequest)
	}

	batchID := uuid.NewString()
	s.logger.Info("AddEquipment: старт пакетного добавления",
		zap.String("batch_id", batchID),
		zap.Int("candidates", len(items)),
	)

	var added int
	var errMsgs []string

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for i, item := range items {
			if err := s.validateCandidate(ctx, tx, item, 0); err != nil {
				if !isDomainError(err) {
					return err
				}
				errMsgs = append(errMsgs, fmt.Sprintf("элемент %d: %s", i+1, err.Error()))
				continue
			}

			newID, err := s.equipmentRepository.InsertEquipment(ctx, tx, item)
			if err != nil {
				return err
			}
			added++
			s.logger.Debug("AddEquipment: запись добавлена",
				zap.String("batch_id", batchID),
				zap.Uint64("id", newID),
				zap.Uint64("type_id", item.TypeID),
				zap.String("serial_number", item.SerialNumber),
			)
		}

		if added == 0 {
			return fmt.Errorf("%w: ни один элемент не добавлен: %s",
				apperrors.ErrBadRequest, strings.Join(errMsgs, "; "))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("AddEquipment: пакет отклонен",
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("AddEquipment: пакет зафиксирован",
		zap.String("batch_id", batchID),
		zap.Int("added", added),
		zap.Int("rejected", len(errMsgs)),
	)

	return &dto.BatchAddResultDTO{Added: added, Errors: errMsgs}, nil
}

// UpdateEquipment - одиночное обновление, все или ничего. Итоговые
// type_id и serial_number (с учетом не тронутых полей) заново проходят
// маску и проверку уникальности, исключая саму запись.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, patch dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	current, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsDeleted {
		return nil, fmt.Errorf("%w: запись %d удалена", apperrors.ErrNotFound, id)
	}

	effective := dto.CreateEquipmentDTO{
		TypeID:       current.TypeID,
		SerialNumber: current.SerialNumber,
	}
	if patch.TypeID != nil {
		effective.TypeID = *patch.TypeID
	}
	if patch.SerialNumber != nil {
		effective.SerialNumber = *patch.SerialNumber
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.validateCandidate(ctx, tx, effective, id); err != nil {
			if isDomainError(err) {
				return apperrors.NewHttpError(http.StatusBadRequest, err.Error(), err, map[string]interface{}{
					"id":            id,
					"type_id":       effective.TypeID,
					"serial_number": effective.SerialNumber,
				})
			}
			return err
		}
		return s.equipmentRepository.UpdateEquipment(ctx, tx, id, patch)
	})
	if err != nil {
		s.logger.Error("UpdateEquipment: обновление отклонено", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return equipmentEntityToDTO(updated), nil
}

// DeleteEquipment - мягкое удаление. Повторное удаление возвращает
// ошибку, а не тихий успех.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	alive, err := s.equipmentRepository.ExistsEquipment(ctx, id, false)
	if err != nil {
		return err
	}
	if !alive {
		return fmt.Errorf("%w: активная запись %d не найдена", apperrors.ErrNotFound, id)
	}

	return s.equipmentRepository.SoftDeleteEquipment(ctx, id)
}

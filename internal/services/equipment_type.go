package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
)

type EquipmentTypeServiceInterface interface {
	GetEquipmentTypes(ctx context.Context, page, limit int) ([]dto.EquipmentTypeDTO, uint64, error)
}

// EquipmentTypeService читает справочник типов. Типы наполняются
// сидерами и меняются редко, поэтому страницы списка кешируются
// в Redis с TTL. Кеш вспомогательный: его сбои только логируются.
type EquipmentTypeService struct {
	etRepository repositories.EquipmentTypeRepositoryInterface
	cacheRepo    repositories.CacheRepositoryInterface
	logger       *zap.Logger
	cacheTTL     time.Duration
}

func NewEquipmentTypeService(
	etRepo repositories.EquipmentTypeRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) EquipmentTypeServiceInterface {
	return &EquipmentTypeService{
		etRepository: etRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// cachedTypesPage - envelope для кеша: список вместе с общим количеством.
type cachedTypesPage struct {
	List  []dto.EquipmentTypeDTO `json:"list"`
	Total uint64                 `json:"total"`
}

func etEntityToDTO(entity *entities.EquipmentType) dto.EquipmentTypeDTO {
	return dto.EquipmentTypeDTO{
		ID:         entity.ID,
		Name:       entity.Name,
		SerialMask: entity.SerialMask,
	}
}

func (s *EquipmentTypeService) GetEquipmentTypes(ctx context.Context, page, limit int) ([]dto.EquipmentTypeDTO, uint64, error) {
	if page < 1 || limit < 1 {
		return nil, 0, fmt.Errorf("%w: page и limit должны быть больше нуля", apperrors.ErrBadRequest)
	}

	cacheKey := fmt.Sprintf("inventory:equipment_types:page:%d:limit:%d", page, limit)

	if s.cacheRepo != nil {
		if cachedJSON, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
			var cached cachedTypesPage
			if err := json.Unmarshal([]byte(cachedJSON), &cached); err == nil {
				s.logger.Debug("GetEquipmentTypes: страница найдена в кеше", zap.String("key", cacheKey))
				return cached.List, cached.Total, nil
			}
			s.logger.Warn("GetEquipmentTypes: поврежденная запись в кеше", zap.String("key", cacheKey))
		}
	}

	offset := uint64(limit) * uint64(page-1)
	items, total, err := s.etRepository.GetEquipmentTypes(ctx, uint64(limit), offset)
	if err != nil {
		s.logger.Error("GetEquipmentTypes: ошибка чтения справочника", zap.Error(err))
		return nil, 0, err
	}

	dtos := make([]dto.EquipmentTypeDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, etEntityToDTO(&items[i]))
	}

	if s.cacheRepo != nil {
		payload, err := json.Marshal(cachedTypesPage{List: dtos, Total: total})
		if err == nil {
			if err := s.cacheRepo.Set(ctx, cacheKey, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("GetEquipmentTypes: не удалось записать страницу в кеш",
					zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return dtos, total, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

const equipmentTypeTable = "equipment_type"

type EquipmentTypeRepositoryInterface interface {
	GetEquipmentTypes(ctx context.Context, limit uint64, offset uint64) ([]entities.EquipmentType, uint64, error)
	FindEquipmentType(ctx context.Context, q Querier, id uint64) (*entities.EquipmentType, error)
}

type EquipmentTypeRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentTypeRepository(storage *pgxpool.Pool) EquipmentTypeRepositoryInterface {
	return &EquipmentTypeRepository{
		storage: storage,
	}
}

func (r *EquipmentTypeRepository) GetEquipmentTypes(ctx context.Context, limit uint64, offset uint64) ([]entities.EquipmentType, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	var total uint64
	sqlCount, _, err := psql.Select("COUNT(id)").From(equipmentTypeTable).ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := psql.
		Select("id", "name", "serial_mask").
		From(equipmentTypeTable).
		OrderBy("id ASC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipmentTypes := make([]entities.EquipmentType, 0, limit)
	for rows.Next() {
		var et entities.EquipmentType
		if err := rows.Scan(&et.ID, &et.Name, &et.SerialMask); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования equipment_type: %w", err)
		}
		equipmentTypes = append(equipmentTypes, et)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return equipmentTypes, total, nil
}

// FindEquipmentType работает и через пул, и внутри открытой транзакции:
// пакетное добавление читает маску типа тем же соединением, что и пишет.
func (r *EquipmentTypeRepository) FindEquipmentType(ctx context.Context, q Querier, id uint64) (*entities.EquipmentType, error) {
	if q == nil {
		q = r.storage
	}

	query := fmt.Sprintf("SELECT id, name, serial_mask FROM %s WHERE id = $1", equipmentTypeTable)

	var et entities.EquipmentType
	err := q.QueryRow(ctx, query, id).Scan(&et.ID, &et.Name, &et.SerialMask)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEquipmentTypeNotFound
		}
		return nil, err
	}

	return &et, nil
}

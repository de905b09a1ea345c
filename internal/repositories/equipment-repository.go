package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const equipmentTable = "equipment"

// Карта разрешенных фильтров списка: json-поле -> колонка.
var equipmentFilterMap = map[string]string{
	"type_id":       "e.type_id",
	"serial_number": "e.serial_number",
	"note":          "e.note",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	ExistsEquipment(ctx context.Context, id uint64, isDeleted bool) (bool, error)
	IsSerialUnique(ctx context.Context, q Querier, typeID uint64, serialNumber string, excludeID uint64) (bool, error)
	InsertEquipment(ctx context.Context, tx pgx.Tx, item dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, tx pgx.Tx, id uint64, patch dto.UpdateEquipmentDTO) error
	SoftDeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var note sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&e.ID, &e.TypeID, &e.SerialNumber, &note, &e.IsDeleted, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}

	if note.Valid {
		e.Note = &note.String
	}
	if createdAt.Valid {
		e.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}

	return &e, nil
}

// applyEquipmentFilters навешивает разрешенные фильтры: точное совпадение
// type_id, подстрочный поиск по serial_number и note. Условия складываются
// через AND.
func applyEquipmentFilters(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	for jsonField, val := range filter.Filter {
		dbCol, ok := equipmentFilterMap[jsonField]
		if !ok {
			continue
		}
		switch jsonField {
		case "type_id":
			builder = builder.Where(sq.Eq{dbCol: val})
		default:
			builder = builder.Where(sq.ILike{dbCol: fmt.Sprintf("%%%v%%", val)})
		}
	}
	return builder
}

// GetEquipments возвращает страницу активных записей и общее количество
// под тем же фильтром.
func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// 1. COUNT
	countBuilder := psql.Select("COUNT(e.id)").
		From(equipmentTable + " AS e").
		Where(sq.Eq{"e.is_deleted": false})
	countBuilder = applyEquipmentFilters(countBuilder, filter)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	// 2. SELECT
	baseBuilder := psql.Select(
		"e.id", "e.type_id", "e.serial_number", "e.note", "e.is_deleted",
		"e.created_at", "e.updated_at",
	).
		From(equipmentTable + " AS e").
		Where(sq.Eq{"e.is_deleted": false}).
		OrderBy("e.id ASC")

	baseBuilder = applyEquipmentFilters(baseBuilder, filter)

	if filter.Limit > 0 {
		baseBuilder = baseBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		baseBuilder = baseBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0, filter.Limit)
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		equipments = append(equipments, *equipment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return equipments, total, nil
}

// FindEquipment находит запись по id независимо от флага is_deleted:
// удаленные записи остаются адресуемыми для истории.
func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
		SELECT e.id, e.type_id, e.serial_number, e.note, e.is_deleted, e.created_at, e.updated_at
		FROM %s e
		WHERE e.id = $1
	`, equipmentTable)

	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

// ExistsEquipment - проба существования с заданным значением флага удаления.
func (r *EquipmentRepository) ExistsEquipment(ctx context.Context, id uint64, isDeleted bool) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1 AND is_deleted = $2)", equipmentTable)

	var exists bool
	if err := r.storage.QueryRow(ctx, query, id, isDeleted).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// IsSerialUnique проверяет, свободна ли пара (type_id, serial_number) среди
// активных записей. excludeID > 0 исключает саму обновляемую запись.
// Вызов обязан идти через Querier той транзакции, которая будет писать.
func (r *EquipmentRepository) IsSerialUnique(ctx context.Context, q Querier, typeID uint64, serialNumber string, excludeID uint64) (bool, error) {
	if q == nil {
		q = r.storage
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select("COUNT(id)").
		From(equipmentTable).
		Where(sq.Eq{"type_id": typeID, "serial_number": serialNumber, "is_deleted": false})
	if excludeID > 0 {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, err
	}

	var count uint64
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// InsertEquipment добавляет одну активную запись. Требует открытую
// транзакцию: проверка уникальности и вставка неразделимы.
func (r *EquipmentRepository) InsertEquipment(ctx context.Context, tx pgx.Tx, item dto.CreateEquipmentDTO) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (type_id, serial_number, note, is_deleted)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id
	`, equipmentTable)

	var note interface{}
	if item.Note.Valid {
		note = item.Note.String
	}

	var newID uint64
	if err := tx.QueryRow(ctx, query, item.TypeID, item.SerialNumber, note).Scan(&newID); err != nil {
		return 0, err
	}
	return newID, nil
}

// UpdateEquipment применяет только поля из разрешенного набора
// {type_id, serial_number, note}. Пустой patch - ошибка.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, tx pgx.Tx, id uint64, patch dto.UpdateEquipmentDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update(equipmentTable)

	hasFields := false
	if patch.TypeID != nil {
		builder = builder.Set("type_id", *patch.TypeID)
		hasFields = true
	}
	if patch.SerialNumber != nil {
		builder = builder.Set("serial_number", *patch.SerialNumber)
		hasFields = true
	}
	if patch.Note.Valid {
		builder = builder.Set("note", patch.Note.String)
		hasFields = true
	}
	if !hasFields {
		return apperrors.ErrNoFieldsToUpdate
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteEquipment помечает запись удаленной. Проверка, что запись
// жива, лежит на сервисе: повторное удаление должно вернуть ошибку.
func (r *EquipmentRepository) SoftDeleteEquipment(ctx context.Context, id uint64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`, equipmentTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

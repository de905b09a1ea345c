package repositories

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

var testPool *pgxpool.Pool

// TestMain поднимает соединение с тестовой БД и применяет схему.
// Без переменной TEST_DATABASE_URL интеграционные тесты пропускаются.
func TestMain(m *testing.M) {
	testDbUrl := os.Getenv("TEST_DATABASE_URL")
	if testDbUrl == "" {
		os.Exit(m.Run())
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), testDbUrl)
	if err != nil {
		log.Fatalf("Не удалось подключиться к тестовой БД: %v", err)
	}
	defer testPool.Close()

	applySchema(testPool)

	os.Exit(m.Run())
}

// applySchema читает и выполняет DDL-скрипт для создания таблиц в тестовой БД.
func applySchema(pool *pgxpool.Pool) {
	path, _ := filepath.Abs("../../testdata/schema.sql")
	schema, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Не удалось прочитать schema.sql: %v", err)
	}
	if _, err := pool.Exec(context.Background(), string(schema)); err != nil {
		log.Fatalf("Не удалось применить схему БД: %v", err)
	}
}

func requirePool(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан, интеграционный тест пропущен")
	}
}

// cleanupTables очищает таблицы для обеспечения изоляции тестов.
func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE TABLE equipment, equipment_type RESTART IDENTITY CASCADE;`)
	require.NoError(t, err, "Не удалось очистить таблицы")
}

// seedType создает тип оборудования и возвращает его id.
func seedType(t *testing.T, pool *pgxpool.Pool, name, mask string) uint64 {
	t.Helper()
	var id uint64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO equipment_type (name, serial_mask) VALUES ($1, $2) RETURNING id`, name, mask).Scan(&id)
	require.NoError(t, err)
	return id
}

// insertViaTx выполняет вставку через репозиторий внутри транзакции,
// как это делает сервис.
func insertViaTx(t *testing.T, repo EquipmentRepositoryInterface, item dto.CreateEquipmentDTO) uint64 {
	t.Helper()
	tx, err := testPool.Begin(context.Background())
	require.NoError(t, err)
	newID, err := repo.InsertEquipment(context.Background(), tx, item)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))
	return newID
}

func TestEquipmentRepository_Integration_InsertAndFind(t *testing.T) {
	requirePool(t)
	cleanupTables(t, testPool)
	typeID := seedType(t, testPool, "Ноутбук", "NNAAXX")
	repo := NewEquipmentRepository(testPool, zap.NewNop())

	newID := insertViaTx(t, repo, dto.CreateEquipmentDTO{
		TypeID:       typeID,
		SerialNumber: "12ABC3",
		Note:         null.StringFrom("тестовая запись"),
	})
	require.True(t, newID > 0)

	found, err := repo.FindEquipment(context.Background(), newID)
	require.NoError(t, err)
	assert.Equal(t, typeID, found.TypeID)
	assert.Equal(t, "12ABC3", found.SerialNumber)
	require.NotNil(t, found.Note)
	assert.Equal(t, "тестовая запись", *found.Note)
	assert.False(t, found.IsDeleted)
	assert.NotNil(t, found.CreatedAt)
}

func TestEquipmentRepository_Integration_IsSerialUnique(t *testing.T) {
	requirePool(t)
	cleanupTables(t, testPool)
	typeA := seedType(t, testPool, "Ноутбук", "NNAAXX")
	typeB := seedType(t, testPool, "Монитор", "NNAAXX")
	repo := NewEquipmentRepository(testPool, zap.NewNop())

	id := insertViaTx(t, repo, dto.CreateEquipmentDTO{TypeID: typeA, SerialNumber: "12ABC3"})

	unique, err := repo.IsSerialUnique(context.Background(), nil, typeA, "12ABC3", 0)
	require.NoError(t, err)
	assert.False(t, unique, "занятая пара должна считаться неуникальной")

	unique, err = repo.IsSerialUnique(context.Background(), nil, typeB, "12ABC3", 0)
	require.NoError(t, err)
	assert.True(t, unique, "тот же серийник у другого типа свободен")

	unique, err = repo.IsSerialUnique(context.Background(), nil, typeA, "12ABC3", id)
	require.NoError(t, err)
	assert.True(t, unique, "исключение собственного id освобождает пару")

	// После мягкого удаления пара снова свободна.
	require.NoError(t, repo.SoftDeleteEquipment(context.Background(), id))
	unique, err = repo.IsSerialUnique(context.Background(), nil, typeA, "12ABC3", 0)
	require.NoError(t, err)
	assert.True(t, unique)
}

func TestEquipmentRepository_Integration_UniqueIndexBackstop(t *testing.T) {
	requirePool(t)
	cleanupTables(t, testPool)
	typeID := seedType(t, testPool, "Ноутбук", "NNAAXX")
	repo := NewEquipmentRepository(testPool, zap.NewNop())

	insertViaTx(t, repo, dto.CreateEquipmentDTO{TypeID: typeID, SerialNumber: "12ABC3"})

	// Прямая вставка дубликата мимо проверки сервиса упирается в
	// частичный уникальный индекс.
	tx, err := testPool.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback(context.Background())
	_, err = repo.InsertEquipment(context.Background(), tx, dto.CreateEquipmentDTO{TypeID: typeID, SerialNumber: "12ABC3"})
	require.Error(t, err)
}

func TestEquipmentRepository_Integration_GetEquipmentsFilters(t *testing.T) {
	requirePool(t)
	cleanupTables(t, testPool)
	typeA := seedType(t, testPool, "Ноутбук", "NNAAXX")
	typeB := seedType(t, testPool, "Монитор", "NNAAXX")
	repo := NewEquipmentRepository(testPool, zap.NewNop())

	insertViaTx(t, repo, dto.CreateEquipmentDTO{TypeID: typeA, SerialNumber: "12ABC3"})
	insertViaTx(t, repo, dto.CreateEquipmentDTO{TypeID: typeA, SerialNumber: "45XYB7", Note: null.StringFrom("склад 2")})
	deletedID := insertViaTx(t, repo, dto.CreateEquipmentDTO{TypeID: typeB, SerialNumber: "78QWE9"})
	require.NoError(t, repo.SoftDeleteEquipment(context.Background(), deletedID))

	// Удаленные записи не попадают в список.
	items, total, err := repo.GetEquipments(context.Background(), types.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, items, 2)

	// Фильтр по type_id.
	items, total, err = repo.GetEquipments(context.Background(), types.Filter{
		Filter: map[string]interface{}{"type_id": typeA},
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)

	// Подстрочный поиск по серийнику.
	items, total, err = repo.GetEquipments(context.Background(), types.Filter{
		Filter: map[string]interface{}{"serial_number": "xyb"},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), total)
	assert.Equal(t, "45XYB7", items[0].SerialNumber)

	// Пагинация.
	items, total, err = repo.GetEquipments(context.Background(), types.Filter{Limit: 1, Offset: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, items, 1)
	assert.Equal(t, "45XYB7", items[0].SerialNumber)
}

func TestEquipmentRepository_Integration_Pagination(t *testing.T) {
	requirePool(t)
	cleanupTables(t, testPool)
	typeID := seedType(t, testPool, "Ноутбук", "NNAAXX")
	repo := NewEquipmentRepository(testPool, zap.NewNop())

	serials := []string{
		"10ABA0", "11ABA1", "12ABA2", "13ABA3", "14ABA4", "15ABA5",
		"16ABA6", "17ABA7", "18ABA8", "19ABA9", "20ABB0", "21ABB1",
	}
	for _, s := range serials {
		insertViaTx(t, repo, dto.CreateEquipmentDTO{TypeID: typeID, SerialNumber: s})
	}

	// Страница 2 по 5 записей: элементы 6..10 в порядке id.
	items, total, err := repo.GetEquipments(context.Background(), types.Filter{Limit: 5, Offset: 5, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), total)
	require.Len(t, items, 5)
	assert.Equal(t, "15ABA5", items[0].SerialNumber)
	assert.Equal(t, "19ABA9", items[4].SerialNumber)

	// Страница 3 - хвост из двух записей.
	items, total, err = repo.GetEquipments(context.Background(), types.Filter{Limit: 5, Offset: 10, Page: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), total)
	require.Len(t, items, 2)
	assert.Equal(t, "20ABB0", items[0].SerialNumber)
	assert.Equal(t, "21ABB1", items[1].SerialNumber)
}

func TestEquipmentRepository_Integration_Update(t *testing.T) {
	requirePool(t)
	cleanupTables(t, testPool)
	typeID := seedType(t, testPool, "Ноутбук", "NNAAXX")
	repo := NewEquipmentRepository(testPool, zap.NewNop())

	id := insertViaTx(t, repo, dto.CreateEquipmentDTO{TypeID: typeID, SerialNumber: "12ABC3"})

	newSerial := "45XYB7"
	tx, err := testPool.Begin(context.Background())
	require.NoError(t, err)
	err = repo.UpdateEquipment(context.Background(), tx, id, dto.UpdateEquipmentDTO{
		SerialNumber: &newSerial,
		Note:         null.StringFrom("после ремонта"),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))

	found, err := repo.FindEquipment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "45XYB7", found.SerialNumber)
	require.NotNil(t, found.Note)
	assert.Equal(t, "после ремонта", *found.Note)

	// Пустой patch отклоняется.
	tx, err = testPool.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback(context.Background())
	err = repo.UpdateEquipment(context.Background(), tx, id, dto.UpdateEquipmentDTO{})
	assert.True(t, errors.Is(err, apperrors.ErrNoFieldsToUpdate))
}

func TestEquipmentRepository_Integration_SoftDelete(t *testing.T) {
	requirePool(t)
	cleanupTables(t, testPool)
	typeID := seedType(t, testPool, "Ноутбук", "NNAAXX")
	repo := NewEquipmentRepository(testPool, zap.NewNop())

	id := insertViaTx(t, repo, dto.CreateEquipmentDTO{TypeID: typeID, SerialNumber: "12ABC3"})

	require.NoError(t, repo.SoftDeleteEquipment(context.Background(), id))

	// Запись осталась адресуемой, но помечена удаленной.
	found, err := repo.FindEquipment(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, found.IsDeleted)

	// Повторное удаление - ошибка.
	err = repo.SoftDeleteEquipment(context.Background(), id)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	alive, err := repo.ExistsEquipment(context.Background(), id, false)
	require.NoError(t, err)
	assert.False(t, alive)
}

func TestEquipmentTypeRepository_Integration_Find(t *testing.T) {
	requirePool(t)
	cleanupTables(t, testPool)
	typeID := seedType(t, testPool, "Ноутбук", "NNAAXX")
	repo := NewEquipmentTypeRepository(testPool)

	et, err := repo.FindEquipmentType(context.Background(), nil, typeID)
	require.NoError(t, err)
	assert.Equal(t, "Ноутбук", et.Name)
	assert.Equal(t, "NNAAXX", et.SerialMask)

	_, err = repo.FindEquipmentType(context.Background(), nil, typeID+100)
	assert.True(t, errors.Is(err, apperrors.ErrEquipmentTypeNotFound))
}

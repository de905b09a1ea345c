package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedEquipmentDictionaries наполняет справочник типов оборудования
// вместе с масками серийных номеров.
func SeedEquipmentDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения справочников оборудования...")

	if err := seedEquipmentTypes(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Типов Оборудования (EquipmentTypes): %v", err)
	}

	log.Println("✅ Наполнение справочников оборудования завершено!")
}

package main

import (
	"flag"
	"log"

	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	"inventory-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runEquipment := flag.Bool("equipment", false, "Запустить наполнение справочников оборудования")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runEquipment && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -equipment")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runEquipment {
		seeders.SeedEquipmentDictionaries(dbPool)
		log.Println("======================================================")
	}

	log.Println("🎉 Работа сидеров завершена.")
}

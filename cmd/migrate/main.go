package main

import (
	"embed"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inventory-system/pkg/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	command := flag.String("command", "up", "Команда миграции: up, down, status")
	flag.Parse()

	cfg := config.New()

	db, err := goose.OpenDBWithDriver("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ Не удалось выбрать диалект: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	default:
		log.Fatalf("❌ Неизвестная команда миграции: %s", *command)
	}
	if err != nil {
		log.Fatalf("❌ Ошибка выполнения миграции '%s': %v", *command, err)
	}

	log.Printf("✅ Миграция '%s' выполнена успешно", *command)
}

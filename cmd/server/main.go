package main

import (
	"errors"
	"log"

	"workout-buddy/internal/config"
	"workout-buddy/internal/database"
	"workout-buddy/internal/server"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Применяем миграции при старте.
	// Для отдельного управления версиями схемы есть cmd/migrate.
	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Ошибка создания мигратора: %v", err)
	}
	if err := migrator.Up(); err != nil {
		if errors.Is(err, database.ErrNoChange) {
			log.Println("Схема базы данных актуальна, миграции не требуются")
		} else {
			log.Fatalf("Ошибка применения миграций: %v", err)
		}
	}

	// Создаем и запускаем сервер
	srv := server.NewServer(cfg, db)
	if err := srv.Start(); err != nil {
		log.Fatalf("Ошибка работы сервера: %v", err)
	}
}

package app

import (
	"log"

	"blogAPI/internal/config"
	"blogAPI/internal/database"
	"blogAPI/internal/repository"
	"blogAPI/internal/service"
	"blogAPI/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// seed: статусы по умолчанию и администратор
	if err := db.Seed(cfg); err != nil {
		log.Fatalf("Не удалось заполнить начальные данные: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}

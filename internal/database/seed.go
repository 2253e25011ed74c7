package database

import (
	"fmt"
	"log"

	"blogAPI/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// Seed добавляет обязательные строки: статусы draft/published и администратора.
// Повторный запуск ничего не дублирует.
func (db *DB) Seed(cfg *config.Config) error {
	_, err := db.Exec(`
		INSERT INTO status (name, description) VALUES
			('draft', 'Draft post'),
			('published', 'Published post')
		ON CONFLICT (name) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("ошибка при создании статусов по умолчанию: %w", err)
	}

	var adminCount int
	err = db.Get(&adminCount, `SELECT COUNT(*) FROM users WHERE role = 'admin'`)
	if err != nil {
		return fmt.Errorf("ошибка при проверке администратора: %w", err)
	}

	if adminCount > 0 {
		return nil
	}

	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD не задан, администратор не создан")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля администратора: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
	`, cfg.AdminUsername, cfg.AdminEmail, string(hashedPassword))
	if err != nil {
		return fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	log.Printf("Создан администратор: %s", cfg.AdminUsername)
	return nil
}

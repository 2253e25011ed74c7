package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blogAPI/internal/models"

	"github.com/jmoiron/sqlx"
)

type statusRepository struct {
	db *sqlx.DB
}

func NewStatusRepository(db *sqlx.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *models.Status) error {
	query := `INSERT INTO status (name, description) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRowxContext(ctx, query, status.Name, status.Description).Scan(&status.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("статус %s уже существует", status.Name)
		}
		return fmt.Errorf("ошибка при создании статуса: %w", err)
	}

	return nil
}

func (r *statusRepository) GetByID(ctx context.Context, statusID int64) (*models.Status, error) {
	var status models.Status

	// description в схеме nullable, пустая строка вместо NULL
	err := r.db.GetContext(ctx, &status, `SELECT id, name, COALESCE(description, '') AS description FROM status WHERE id = $1`, statusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("статус с ID %d не найден", statusID)
		}
		return nil, fmt.Errorf("ошибка при получении статуса: %w", err)
	}

	return &status, nil
}

func (r *statusRepository) List(ctx context.Context) ([]models.Status, error) {
	var statuses []models.Status

	if err := r.db.SelectContext(ctx, &statuses, `SELECT id, name, COALESCE(description, '') AS description FROM status ORDER BY id`); err != nil {
		return nil, fmt.Errorf("ошибка при получении статусов: %w", err)
	}

	return statuses, nil
}

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

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `INSERT INTO tags (name) VALUES ($1) RETURNING id`

	err := r.db.QueryRowxContext(ctx, query, tag.Name).Scan(&tag.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("тег %s уже существует", tag.Name)
		}
		return fmt.Errorf("ошибка при создании тега: %w", err)
	}

	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, tagID int64) (*models.Tag, error) {
	var tag models.Tag

	err := r.db.GetContext(ctx, &tag, `SELECT * FROM tags WHERE id = $1`, tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("тег с ID %d не найден", tagID)
		}
		return nil, fmt.Errorf("ошибка при получении тега: %w", err)
	}

	return &tag, nil
}

// GetOrCreate возвращает тег по имени, при отсутствии создает его
func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag

	err := r.db.GetContext(ctx, &tag, `SELECT * FROM tags WHERE name = $1`, name)
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ошибка при поиске тега: %w", err)
	}

	query := `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	tag.Name = name
	if err := r.db.QueryRowxContext(ctx, query, name).Scan(&tag.ID); err != nil {
		return nil, fmt.Errorf("ошибка при создании тега: %w", err)
	}

	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag

	if err := r.db.SelectContext(ctx, &tags, `SELECT * FROM tags ORDER BY name`); err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов: %w", err)
	}

	return tags, nil
}

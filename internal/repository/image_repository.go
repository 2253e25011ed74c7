package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogAPI/internal/models"

	"github.com/jmoiron/sqlx"
)

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.PostImage) error {
	query := `
		INSERT INTO post_images (post_id, object_name, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, image.PostID, image.ObjectName, image.ImageURL).
		Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении изображения: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByID(ctx context.Context, imageID int64) (*models.PostImage, error) {
	var image models.PostImage

	err := r.db.GetContext(ctx, &image, `SELECT * FROM post_images WHERE id = $1`, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("изображение с ID %d не найдено", imageID)
		}
		return nil, fmt.Errorf("ошибка при получении изображения: %w", err)
	}

	return &image, nil
}

func (r *ImageRepositoryImpl) ListByPost(ctx context.Context, postID int64) ([]models.PostImage, error) {
	var images []models.PostImage

	query := `SELECT * FROM post_images WHERE post_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &images, query, postID); err != nil {
		return nil, fmt.Errorf("ошибка при получении изображений поста: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, imageID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_images WHERE id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении изображения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("изображение с ID %d не найдено", imageID)
	}

	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"blogAPI/internal/models"

	"github.com/jmoiron/sqlx"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	query := `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, like.PostID, like.UserID).
		Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		// UNIQUE (post_id, user_id) не позволяет лайкнуть дважды
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("пост уже лайкнут")
		}
		return fmt.Errorf("ошибка при добавлении лайка: %w", err)
	}

	return nil
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID int64) error {
	query := `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("лайк не найден")
	}

	return nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете лайков: %w", err)
	}

	return count, nil
}

func (r *likeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке лайка: %w", err)
	}

	return count > 0, nil
}

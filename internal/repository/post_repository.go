package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogAPI/internal/models"

	"github.com/jmoiron/sqlx"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID int64    `json:"author_id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	StatusID int64    `json:"status_id"`
	Tags     []string `json:"tags"`
}

type UpdatePostRequest struct {
	PostID   int64     `json:"post_id"`
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	StatusID *int64    `json:"status_id"`
	Tags     *[]string `json:"tags"`
}

const postSelectColumns = `
	p.id, p.title, p.content, p.author_id, p.status_id, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count
`

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, author_id, status_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, post.Title, post.Content, post.AuthorID, post.StatusID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT ` + postSelectColumns + ` FROM posts p WHERE p.id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %d не найден", postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	if err := r.loadTags(ctx, &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// visibilityClause возвращает SQL-условие видимости постов для текущего пользователя:
// аноним видит только опубликованные, админ видит все, остальные свои плюс опубликованные
func visibilityClause(filter PostFilter, args *[]interface{}) string {
	if filter.ViewerRole == models.RoleAdmin {
		return ""
	}
	if filter.ViewerID == 0 {
		*args = append(*args, models.StatusPublishedID)
		return fmt.Sprintf("p.status_id = $%d", len(*args))
	}
	*args = append(*args, filter.ViewerID, models.StatusPublishedID)
	return fmt.Sprintf("(p.author_id = $%d OR p.status_id = $%d)", len(*args)-1, len(*args))
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter) ([]models.Post, int, error) {
	var args []interface{}
	var where []string
	from := `FROM posts p`

	if filter.TagID != 0 {
		from += ` JOIN post_tags pt ON pt.post_id = p.id`
		args = append(args, filter.TagID)
		where = append(where, fmt.Sprintf("pt.tag_id = $%d", len(args)))
	}

	if filter.StatusName != "" {
		from += ` JOIN status s ON s.id = p.status_id`
		args = append(args, filter.StatusName)
		where = append(where, fmt.Sprintf("s.name = $%d", len(args)))
	} else if clause := visibilityClause(filter, &args); clause != "" {
		where = append(where, clause)
	}

	if filter.AuthorID != 0 {
		args = append(args, filter.AuthorID)
		where = append(where, fmt.Sprintf("p.author_id = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", len(args), len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + joinAnd(where)
	}

	var total int
	countQuery := `SELECT COUNT(*) ` + from + whereSQL
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете постов: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := `SELECT ` + postSelectColumns + ` ` + from + whereSQL +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	if err := r.loadTagsAll(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *PostRepositoryImpl) ListLikedBy(ctx context.Context, userID int64, page, limit int) ([]models.Post, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM posts p
		JOIN likes l ON l.post_id = p.id
		WHERE l.user_id = $1
	`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете понравившихся постов: %w", err)
	}

	query := `SELECT ` + postSelectColumns + `
		FROM posts p
		JOIN likes l ON l.post_id = p.id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, userID, limit, (page-1)*limit); err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении понравившихся постов: %w", err)
	}

	if err := r.loadTagsAll(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			status_id = :status_id,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d не найден", post.ID)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d не найден", postID)
	}

	return nil
}

// ReplaceTags полностью заменяет набор тегов поста
func (r *PostRepositoryImpl) ReplaceTags(ctx context.Context, postID int64, tagIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("ошибка при очистке тегов поста: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке тега: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) loadTags(ctx context.Context, post *models.Post) error {
	query := `
		SELECT t.id, t.name FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`

	var tags []models.Tag
	if err := r.db.SelectContext(ctx, &tags, query, post.ID); err != nil {
		return fmt.Errorf("ошибка при получении тегов поста: %w", err)
	}

	post.Tags = tags
	return nil
}

func (r *PostRepositoryImpl) loadTagsAll(ctx context.Context, posts []models.Post) error {
	for i := range posts {
		if err := r.loadTags(ctx, &posts[i]); err != nil {
			return err
		}
	}
	return nil
}

func joinAnd(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += " AND " + p
	}
	return out
}

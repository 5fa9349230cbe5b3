package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/journal/internal/article/domain"
	"github.com/allisson/journal/internal/database"

	apperrors "github.com/allisson/journal/internal/errors"
)

// MySQLArticleRepository handles article persistence for MySQL
type MySQLArticleRepository struct {
	db *sql.DB
}

// NewMySQLArticleRepository creates a new MySQLArticleRepository
func NewMySQLArticleRepository(db *sql.DB) *MySQLArticleRepository {
	return &MySQLArticleRepository{
		db: db,
	}
}

// Create inserts a new article and fills in the generated id
func (r *MySQLArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO articles (title, slug, content, author_id, published, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(6), NOW(6))`

	result, err := querier.ExecContext(
		ctx, query,
		article.Title, article.Slug, article.Content, article.AuthorID, article.Published,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrSlugAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create article")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read generated article id")
	}
	article.ID = id
	return nil
}

// Update persists the mutable article fields
func (r *MySQLArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE articles SET title = ?, slug = ?, content = ?, published = ?, updated_at = NOW(6)
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx, query,
		article.Title, article.Slug, article.Content, article.Published, article.ID,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrSlugAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update article")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if rows == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// Delete removes an article
func (r *MySQLArticleRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete article")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check delete result")
	}
	if rows == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// GetByID retrieves an article by ID
func (r *MySQLArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, slug, content, author_id, published, created_at, updated_at
			  FROM articles WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Slug, &article.Content,
		&article.AuthorID, &article.Published, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get article by id")
	}

	return &article, nil
}

// GetBySlug retrieves an article by slug
func (r *MySQLArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var article domain.Article
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, slug, content, author_id, published, created_at, updated_at
			  FROM articles WHERE slug = ?`

	err := querier.QueryRowContext(ctx, query, slug).Scan(
		&article.ID, &article.Title, &article.Slug, &article.Content,
		&article.AuthorID, &article.Published, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get article by slug")
	}

	return &article, nil
}

// List returns articles ordered by newest first. When publishedOnly is set,
// drafts are filtered out.
func (r *MySQLArticleRepository) List(
	ctx context.Context,
	publishedOnly bool,
	offset, limit int,
) ([]*domain.Article, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, slug, content, author_id, published, created_at, updated_at
			  FROM articles
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	if publishedOnly {
		query = `SELECT id, title, slug, content, author_id, published, created_at, updated_at
				 FROM articles
				 WHERE published = TRUE
				 ORDER BY created_at DESC, id DESC
				 LIMIT ? OFFSET ?`
	}

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list articles")
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		var article domain.Article
		err := rows.Scan(
			&article.ID, &article.Title, &article.Slug, &article.Content,
			&article.AuthorID, &article.Published, &article.CreatedAt, &article.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan article row")
		}
		articles = append(articles, &article)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate article rows")
	}

	return articles, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

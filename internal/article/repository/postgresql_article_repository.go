// Package repository provides data persistence implementations for article entities.
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

// PostgreSQLArticleRepository handles article persistence for PostgreSQL
type PostgreSQLArticleRepository struct {
	db *sql.DB
}

// NewPostgreSQLArticleRepository creates a new PostgreSQLArticleRepository
func NewPostgreSQLArticleRepository(db *sql.DB) *PostgreSQLArticleRepository {
	return &PostgreSQLArticleRepository{
		db: db,
	}
}

// Create inserts a new article and fills in the generated id and timestamps
func (r *PostgreSQLArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO articles (title, slug, content, author_id, published, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := querier.QueryRowContext(
		ctx, query,
		article.Title, article.Slug, article.Content, article.AuthorID, article.Published,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrSlugAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create article")
	}
	return nil
}

// Update persists the mutable article fields
func (r *PostgreSQLArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE articles SET title = $1, slug = $2, content = $3, published = $4, updated_at = NOW()
			  WHERE id = $5`

	result, err := querier.ExecContext(
		ctx, query,
		article.Title, article.Slug, article.Content, article.Published, article.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
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
func (r *PostgreSQLArticleRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
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
func (r *PostgreSQLArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, slug, content, author_id, published, created_at, updated_at
			  FROM articles WHERE id = $1`

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
func (r *PostgreSQLArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var article domain.Article
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, slug, content, author_id, published, created_at, updated_at
			  FROM articles WHERE slug = $1`

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
func (r *PostgreSQLArticleRepository) List(
	ctx context.Context,
	publishedOnly bool,
	offset, limit int,
) ([]*domain.Article, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, slug, content, author_id, published, created_at, updated_at
			  FROM articles
			  ORDER BY created_at DESC, id DESC
			  OFFSET $1 LIMIT $2`
	args := []any{offset, limit}

	if publishedOnly {
		query = `SELECT id, title, slug, content, author_id, published, created_at, updated_at
				 FROM articles
				 WHERE published = TRUE
				 ORDER BY created_at DESC, id DESC
				 OFFSET $1 LIMIT $2`
	}

	rows, err := querier.QueryContext(ctx, query, args...)
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

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

package dto

import (
	"time"

	"github.com/allisson/journal/internal/article/domain"
)

// ArticleResponse is the public representation of an article.
type ArticleResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewArticleResponse maps a domain article to its response form.
func NewArticleResponse(article *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Slug:      article.Slug,
		Content:   article.Content,
		AuthorID:  article.AuthorID,
		Published: article.Published,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

// ArticleListResponse carries a page of articles.
type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

// NewArticleListResponse maps a page of domain articles to its response form.
func NewArticleListResponse(articles []*domain.Article, offset, limit int) ArticleListResponse {
	items := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		items = append(items, NewArticleResponse(article))
	}
	return ArticleListResponse{Articles: items, Offset: offset, Limit: limit}
}

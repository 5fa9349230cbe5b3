// Package usecase implements the article business logic with capability-based
// ownership rules.
package usecase

import (
	"context"
	"log/slog"

	validation "github.com/jellydator/validation"

	"github.com/allisson/journal/internal/article/domain"
	authDomain "github.com/allisson/journal/internal/auth/domain"
	apperrors "github.com/allisson/journal/internal/errors"
	appValidation "github.com/allisson/journal/internal/validation"
)

// CreateArticleInput contains the input data for article creation
type CreateArticleInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateArticleInput contains the mutable article fields for an update
type UpdateArticleInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// UseCase defines the interface for article business logic operations
type UseCase interface {
	Create(ctx context.Context, principal *authDomain.Principal, input CreateArticleInput) (*domain.Article, error)
	Get(ctx context.Context, principal *authDomain.Principal, id int64) (*domain.Article, error)
	GetBySlug(ctx context.Context, principal *authDomain.Principal, slug string) (*domain.Article, error)
	List(ctx context.Context, principal *authDomain.Principal, offset, limit int) ([]*domain.Article, error)
	Update(ctx context.Context, principal *authDomain.Principal, id int64, input UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, principal *authDomain.Principal, id int64) error
	Publish(ctx context.Context, principal *authDomain.Principal, id int64) (*domain.Article, error)
}

// ArticleRepository interface defines article repository operations
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	List(ctx context.Context, publishedOnly bool, offset, limit int) ([]*domain.Article, error)
}

// ArticleUseCase handles article-related business logic
type ArticleUseCase struct {
	articleRepo ArticleRepository
	logger      *slog.Logger
}

// NewArticleUseCase creates a new ArticleUseCase
func NewArticleUseCase(articleRepo ArticleRepository, logger *slog.Logger) *ArticleUseCase {
	return &ArticleUseCase{
		articleRepo: articleRepo,
		logger:      logger,
	}
}

// validateCreateArticleInput validates the creation input
func validateCreateArticleInput(input CreateArticleInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 200).Error("title must be between 1 and 200 characters"),
		),
		validation.Field(&input.Content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// canModify reports whether the principal may perform the given action on the
// article. Holding the ":any" grant allows every article, ":own" only the
// principal's.
func canModify(principal *authDomain.Principal, article *domain.Article, action string) bool {
	if principal.HasCapability("articles", action+":any") {
		return true
	}
	return article.AuthorID == principal.UserID && principal.HasCapability("articles", action+":own")
}

// Create creates a new draft article owned by the principal
func (uc *ArticleUseCase) Create(
	ctx context.Context,
	principal *authDomain.Principal,
	input CreateArticleInput,
) (*domain.Article, error) {
	if !principal.HasCapability("articles", "create") {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "missing articles:create capability")
	}
	if err := validateCreateArticleInput(input); err != nil {
		return nil, err
	}

	slug := domain.Slugify(input.Title)
	if slug == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "title does not produce a valid slug")
	}

	article := &domain.Article{
		Title:    input.Title,
		Slug:     slug,
		Content:  input.Content,
		AuthorID: principal.UserID,
	}

	if err := uc.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	uc.logger.Info("article created",
		slog.Int64("article_id", article.ID),
		slog.String("slug", article.Slug),
		slog.Int64("author_id", article.AuthorID),
	)
	return article, nil
}

// Get retrieves an article. Drafts are only visible to principals holding the
// articles:view:drafts capability.
func (uc *ArticleUseCase) Get(
	ctx context.Context,
	principal *authDomain.Principal,
	id int64,
) (*domain.Article, error) {
	article, err := uc.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.filterDraft(principal, article)
}

// GetBySlug retrieves an article by slug with the same draft visibility rules as Get.
func (uc *ArticleUseCase) GetBySlug(
	ctx context.Context,
	principal *authDomain.Principal,
	slug string,
) (*domain.Article, error) {
	article, err := uc.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return uc.filterDraft(principal, article)
}

// filterDraft hides unpublished articles from readers without draft access.
// Hidden drafts read as not found, not as forbidden, to avoid leaking their
// existence.
func (uc *ArticleUseCase) filterDraft(
	principal *authDomain.Principal,
	article *domain.Article,
) (*domain.Article, error) {
	if article.Published {
		return article, nil
	}
	if principal != nil && principal.HasCapability("articles", "view:drafts") {
		return article, nil
	}
	return nil, domain.ErrArticleNotFound
}

// List returns articles newest first. Anonymous readers and principals
// without draft access see published articles only.
func (uc *ArticleUseCase) List(
	ctx context.Context,
	principal *authDomain.Principal,
	offset, limit int,
) ([]*domain.Article, error) {
	publishedOnly := principal == nil || !principal.HasCapability("articles", "view:drafts")
	return uc.articleRepo.List(ctx, publishedOnly, offset, limit)
}

// Update applies title and content changes. A changed title re-derives the slug.
func (uc *ArticleUseCase) Update(
	ctx context.Context,
	principal *authDomain.Principal,
	id int64,
	input UpdateArticleInput,
) (*domain.Article, error) {
	article, err := uc.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModify(principal, article, "update") {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "cannot update this article")
	}

	if input.Title != nil {
		slug := domain.Slugify(*input.Title)
		if slug == "" {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "title does not produce a valid slug")
		}
		article.Title = *input.Title
		article.Slug = slug
	}
	if input.Content != nil {
		article.Content = *input.Content
	}

	if err := uc.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article, honoring delete:own/delete:any grants.
func (uc *ArticleUseCase) Delete(
	ctx context.Context,
	principal *authDomain.Principal,
	id int64,
) error {
	article, err := uc.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canModify(principal, article, "delete") {
		return apperrors.Wrap(apperrors.ErrForbidden, "cannot delete this article")
	}

	if err := uc.articleRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("article deleted",
		slog.Int64("article_id", id),
		slog.Int64("deleted_by", principal.UserID),
	)
	return nil
}

// Publish makes a draft publicly visible. Publishing requires the
// articles:publish capability plus modify rights on the article.
func (uc *ArticleUseCase) Publish(
	ctx context.Context,
	principal *authDomain.Principal,
	id int64,
) (*domain.Article, error) {
	if !principal.HasCapability("articles", "publish") {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "missing articles:publish capability")
	}

	article, err := uc.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModify(principal, article, "update") {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "cannot publish this article")
	}
	if article.Published {
		return nil, domain.ErrAlreadyPublished
	}

	article.Published = true
	if err := uc.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	uc.logger.Info("article published",
		slog.Int64("article_id", article.ID),
		slog.String("slug", article.Slug),
	)
	return article, nil
}

// Package http provides HTTP handlers for article operations.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/journal/internal/article/http/dto"
	"github.com/allisson/journal/internal/article/usecase"
	authHTTP "github.com/allisson/journal/internal/auth/http"
	"github.com/allisson/journal/internal/httputil"
	customValidation "github.com/allisson/journal/internal/validation"
)

// ArticleHandler handles HTTP requests for articles.
//
// Read endpoints are public: an anonymous caller sees published articles only,
// while a principal holding articles:view:drafts also sees drafts.
type ArticleHandler struct {
	articleUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewArticleHandler creates a new article handler with required dependencies.
func NewArticleHandler(articleUseCase usecase.UseCase, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleUseCase: articleUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a new draft article owned by the caller.
// POST /api/v1/articles - Requires the articles:create capability.
// Returns 201 Created, 409 when the derived slug is taken.
func (h *ArticleHandler) CreateHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	var req dto.CreateArticleRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	article, err := h.articleUseCase.Create(c.Request.Context(), principal, usecase.CreateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewArticleResponse(article))
}

// GetHandler returns an article by id.
// GET /api/v1/articles/:id - Public. Drafts are visible only to principals
// holding articles:view:drafts, anyone else gets 404.
func (h *ArticleHandler) GetHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	id, err := parseArticleID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	article, err := h.articleUseCase.Get(c.Request.Context(), principal, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// GetBySlugHandler returns an article by slug.
// GET /api/v1/articles/slug/:slug - Public, same draft visibility as GetHandler.
func (h *ArticleHandler) GetBySlugHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	slug := c.Param("slug")
	if slug == "" {
		httputil.HandleBadRequestGin(c, errors.New("article slug is required"), h.logger)
		return
	}

	article, err := h.articleUseCase.GetBySlug(c.Request.Context(), principal, slug)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// ListHandler lists articles with offset pagination.
// GET /api/v1/articles?offset=&limit= - Public. Anonymous callers and principals
// without articles:view:drafts see published articles only.
func (h *ArticleHandler) ListHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	articles, err := h.articleUseCase.List(c.Request.Context(), principal, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewArticleListResponse(articles, offset, limit))
}

// UpdateHandler updates an article's title or content.
// PATCH /api/v1/articles/:id - Requires authentication. Allowed for the owner with
// articles:update:own or any principal with articles:update:any.
func (h *ArticleHandler) UpdateHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	id, err := parseArticleID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateArticleRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	article, err := h.articleUseCase.Update(c.Request.Context(), principal, id, usecase.UpdateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// DeleteHandler deletes an article.
// DELETE /api/v1/articles/:id - Requires authentication, same ownership rules as
// UpdateHandler with the delete capability.
func (h *ArticleHandler) DeleteHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	id, err := parseArticleID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.articleUseCase.Delete(c.Request.Context(), principal, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// PublishHandler publishes a draft article.
// POST /api/v1/articles/:id/publish - Requires authentication and the
// articles:publish capability on an article the caller may update.
// Returns 409 when the article is already published.
func (h *ArticleHandler) PublishHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	id, err := parseArticleID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	article, err := h.articleUseCase.Publish(c.Request.Context(), principal, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

func parseArticleID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid article id: must be a positive integer")
	}
	return id, nil
}

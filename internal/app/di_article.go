package app

import (
	"fmt"

	articleRepository "github.com/allisson/journal/internal/article/repository"
	articleUseCase "github.com/allisson/journal/internal/article/usecase"
)

// ArticleRepository returns the article repository based on the database driver.
func (c *Container) ArticleRepository() (articleUseCase.ArticleRepository, error) {
	c.articleRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["articleRepo"] = fmt.Errorf("failed to get database for article repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.articleRepo = articleRepository.NewMySQLArticleRepository(db)
		case "postgres":
			c.articleRepo = articleRepository.NewPostgreSQLArticleRepository(db)
		default:
			c.initErrors["articleRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["articleRepo"]; exists {
		return nil, storedErr
	}
	return c.articleRepo, nil
}

// ArticleUseCase returns the article use case, wrapped with metrics when enabled.
func (c *Container) ArticleUseCase() (articleUseCase.UseCase, error) {
	c.articleUseCaseInit.Do(func() {
		articleRepo, err := c.ArticleRepository()
		if err != nil {
			c.initErrors["articleUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["articleUseCase"] = err
			return
		}

		useCase := articleUseCase.NewArticleUseCase(articleRepo, c.Logger())
		c.articleUC = articleUseCase.NewArticleUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["articleUseCase"]; exists {
		return nil, storedErr
	}
	return c.articleUC, nil
}

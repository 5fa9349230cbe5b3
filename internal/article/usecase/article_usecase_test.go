package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/journal/internal/article/domain"
	authDomain "github.com/allisson/journal/internal/auth/domain"
	apperrors "github.com/allisson/journal/internal/errors"
)

// mockArticleRepository is a mock implementation of ArticleRepository for testing.
type mockArticleRepository struct {
	mock.Mock
}

func (m *mockArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepository) List(
	ctx context.Context,
	publishedOnly bool,
	offset, limit int,
) ([]*domain.Article, error) {
	args := m.Called(ctx, publishedOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Article), args.Error(1)
}

func principalWithRole(userID int64, role authDomain.Role) *authDomain.Principal {
	return &authDomain.Principal{
		UserID:       userID,
		Role:         role,
		Capabilities: role.DefaultCapabilities(),
	}
}

func newArticleUseCase(repo *mockArticleRepository) *ArticleUseCase {
	return NewArticleUseCase(repo, slog.New(slog.DiscardHandler))
}

func TestArticleUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AuthorCreatesDraft", func(t *testing.T) {
		repo := &mockArticleRepository{}
		author := principalWithRole(1, authDomain.AuthorRole)

		repo.On("Create", ctx, mock.MatchedBy(func(article *domain.Article) bool {
			return article.Title == "Hello World" &&
				article.Slug == "hello-world" &&
				article.AuthorID == 1 &&
				!article.Published
		})).Return(nil).Once()

		uc := newArticleUseCase(repo)
		article, err := uc.Create(ctx, author, CreateArticleInput{Title: "Hello World", Content: "content"})

		require.NoError(t, err)
		assert.Equal(t, "hello-world", article.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("Error_MissingCreateCapability", func(t *testing.T) {
		noCaps := &authDomain.Principal{UserID: 1}

		uc := newArticleUseCase(&mockArticleRepository{})
		article, err := uc.Create(ctx, noCaps, CreateArticleInput{Title: "Hello", Content: "content"})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, article)
	})

	t.Run("Error_ValidationFailure", func(t *testing.T) {
		author := principalWithRole(1, authDomain.AuthorRole)

		uc := newArticleUseCase(&mockArticleRepository{})
		article, err := uc.Create(ctx, author, CreateArticleInput{Title: "", Content: "content"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, article)
	})

	t.Run("Error_TitleWithoutSlug", func(t *testing.T) {
		author := principalWithRole(1, authDomain.AuthorRole)

		uc := newArticleUseCase(&mockArticleRepository{})
		article, err := uc.Create(ctx, author, CreateArticleInput{Title: "!!!", Content: "content"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, article)
	})
}

func TestArticleUseCase_Get(t *testing.T) {
	ctx := context.Background()
	published := &domain.Article{ID: 1, Slug: "live", AuthorID: 2, Published: true}
	draft := &domain.Article{ID: 2, Slug: "draft", AuthorID: 2, Published: false}

	t.Run("Success_AnonymousReadsPublished", func(t *testing.T) {
		repo := &mockArticleRepository{}
		repo.On("GetByID", ctx, int64(1)).Return(published, nil).Once()

		uc := newArticleUseCase(repo)
		article, err := uc.Get(ctx, nil, 1)

		require.NoError(t, err)
		assert.Equal(t, "live", article.Slug)
	})

	t.Run("Error_AnonymousCannotSeeDraft", func(t *testing.T) {
		repo := &mockArticleRepository{}
		repo.On("GetByID", ctx, int64(2)).Return(draft, nil).Once()

		uc := newArticleUseCase(repo)
		article, err := uc.Get(ctx, nil, 2)

		// Drafts read as not found rather than forbidden
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
		assert.Nil(t, article)
	})

	t.Run("Success_AuthorSeesDraft", func(t *testing.T) {
		repo := &mockArticleRepository{}
		repo.On("GetByID", ctx, int64(2)).Return(draft, nil).Once()

		uc := newArticleUseCase(repo)
		article, err := uc.Get(ctx, principalWithRole(3, authDomain.AuthorRole), 2)

		require.NoError(t, err)
		assert.Equal(t, "draft", article.Slug)
	})
}

func TestArticleUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous sees published only", func(t *testing.T) {
		repo := &mockArticleRepository{}
		repo.On("List", ctx, true, 0, 10).Return([]*domain.Article{}, nil).Once()

		uc := newArticleUseCase(repo)
		_, err := uc.List(ctx, nil, 0, 10)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("draft viewer sees everything", func(t *testing.T) {
		repo := &mockArticleRepository{}
		repo.On("List", ctx, false, 0, 10).Return([]*domain.Article{}, nil).Once()

		uc := newArticleUseCase(repo)
		_, err := uc.List(ctx, principalWithRole(1, authDomain.AuthorRole), 0, 10)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestArticleUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AuthorUpdatesOwnArticle", func(t *testing.T) {
		repo := &mockArticleRepository{}
		existing := &domain.Article{ID: 1, Title: "Old", Slug: "old", Content: "old", AuthorID: 1}

		repo.On("GetByID", ctx, int64(1)).Return(existing, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(article *domain.Article) bool {
			return article.Title == "New Title" && article.Slug == "new-title"
		})).Return(nil).Once()

		title := "New Title"
		uc := newArticleUseCase(repo)
		article, err := uc.Update(ctx, principalWithRole(1, authDomain.AuthorRole), 1, UpdateArticleInput{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "new-title", article.Slug)
	})

	t.Run("Error_AuthorCannotUpdateOthersArticle", func(t *testing.T) {
		repo := &mockArticleRepository{}
		existing := &domain.Article{ID: 1, AuthorID: 2}
		repo.On("GetByID", ctx, int64(1)).Return(existing, nil).Once()

		title := "New Title"
		uc := newArticleUseCase(repo)
		article, err := uc.Update(ctx, principalWithRole(1, authDomain.AuthorRole), 1, UpdateArticleInput{Title: &title})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, article)
	})

	t.Run("Success_AdminUpdatesAnyArticle", func(t *testing.T) {
		repo := &mockArticleRepository{}
		existing := &domain.Article{ID: 1, Title: "Old", Slug: "old", AuthorID: 2}

		repo.On("GetByID", ctx, int64(1)).Return(existing, nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		content := "revised"
		uc := newArticleUseCase(repo)
		_, err := uc.Update(ctx, principalWithRole(1, authDomain.AdminRole), 1, UpdateArticleInput{Content: &content})

		require.NoError(t, err)
	})
}

func TestArticleUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Owner", func(t *testing.T) {
		repo := &mockArticleRepository{}
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Article{ID: 1, AuthorID: 1}, nil).Once()
		repo.On("Delete", ctx, int64(1)).Return(nil).Once()

		uc := newArticleUseCase(repo)
		assert.NoError(t, uc.Delete(ctx, principalWithRole(1, authDomain.AuthorRole), 1))
	})

	t.Run("Error_Forbidden", func(t *testing.T) {
		repo := &mockArticleRepository{}
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Article{ID: 1, AuthorID: 2}, nil).Once()

		uc := newArticleUseCase(repo)
		err := uc.Delete(ctx, principalWithRole(1, authDomain.AuthorRole), 1)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestArticleUseCase_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PublishesDraft", func(t *testing.T) {
		repo := &mockArticleRepository{}
		draft := &domain.Article{ID: 1, Slug: "draft", AuthorID: 1, Published: false}

		repo.On("GetByID", ctx, int64(1)).Return(draft, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(article *domain.Article) bool {
			return article.Published
		})).Return(nil).Once()

		uc := newArticleUseCase(repo)
		article, err := uc.Publish(ctx, principalWithRole(1, authDomain.AuthorRole), 1)

		require.NoError(t, err)
		assert.True(t, article.Published)
	})

	t.Run("Error_AlreadyPublished", func(t *testing.T) {
		repo := &mockArticleRepository{}
		live := &domain.Article{ID: 1, AuthorID: 1, Published: true}
		repo.On("GetByID", ctx, int64(1)).Return(live, nil).Once()

		uc := newArticleUseCase(repo)
		article, err := uc.Publish(ctx, principalWithRole(1, authDomain.AuthorRole), 1)

		assert.ErrorIs(t, err, domain.ErrAlreadyPublished)
		assert.Nil(t, article)
	})

	t.Run("Error_AuthorCannotPublishOthersDraft", func(t *testing.T) {
		repo := &mockArticleRepository{}
		draft := &domain.Article{ID: 1, AuthorID: 2, Published: false}
		repo.On("GetByID", ctx, int64(1)).Return(draft, nil).Once()

		uc := newArticleUseCase(repo)
		article, err := uc.Publish(ctx, principalWithRole(1, authDomain.AuthorRole), 1)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, article)
	})
}

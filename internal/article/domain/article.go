// Package domain defines the core article domain entities and types.
package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/allisson/journal/internal/errors"
)

// Article represents a journal article.
type Article struct {
	ID        int64
	Title     string
	Slug      string
	Content   string
	AuthorID  int64
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for article operations.
var (
	// ErrArticleNotFound indicates the requested article does not exist.
	ErrArticleNotFound = errors.Wrap(errors.ErrNotFound, "article not found")

	// ErrSlugAlreadyExists indicates an article with the same slug already exists.
	ErrSlugAlreadyExists = errors.Wrap(errors.ErrConflict, "article slug already exists")

	// ErrAlreadyPublished indicates the article has already been published.
	ErrAlreadyPublished = errors.Wrap(errors.ErrConflict, "article already published")
)

// Slugify derives a URL-safe slug from a title: lowercase alphanumeric runs
// joined by single dashes.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

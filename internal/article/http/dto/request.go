// Package dto provides data transfer objects for article HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/journal/internal/validation"
)

// CreateArticleRequest contains the fields to create an article.
type CreateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks if the create request is valid.
func (r *CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 200),
		),
		validation.Field(&r.Content,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// UpdateArticleRequest contains the mutable fields of an article. Nil fields
// are left unchanged.
type UpdateArticleRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Validate checks if the update request is valid.
func (r *UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			validation.Length(1, 200),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty,
		),
	)
}

package dto

import (
	"time"

	"github.com/allisson/journal/internal/user/domain"
)

// UserResponse is the public representation of a user. The password hash
// never leaves the server.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user to its response form.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UserListResponse carries a page of users with the cursor for the next page.
// NextCursor is empty on the last page.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// NewUserListResponse maps a page of domain users to its response form.
func NewUserListResponse(users []*domain.User, nextCursor string) UserListResponse {
	items := make([]UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, NewUserResponse(user))
	}
	return UserListResponse{Users: items, NextCursor: nextCursor}
}

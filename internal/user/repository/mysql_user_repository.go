package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/journal/internal/database"
	"github.com/allisson/journal/internal/user/domain"

	apperrors "github.com/allisson/journal/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user and fills in the generated id
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (username, password_hash, role, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(6), NOW(6))`

	result, err := querier.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role, user.IsActive)
	if err != nil {
		// Check for unique constraint violation (duplicate username)
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read generated user id")
	}
	user.ID = id
	return nil
}

// Update persists the mutable user fields
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET role = ?, is_active = ?, updated_at = NOW(6) WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, user.Role, user.IsActive, user.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *MySQLUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password_hash = ?, updated_at = NOW(6) WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_hash, role, is_active, created_at, updated_at
			  FROM users WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_hash, role, is_active, created_at, updated_at
			  FROM users WHERE username = ?`

	err := querier.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}

	return &user, nil
}

// List returns users ordered by (created_at, id) starting after the cursor
func (r *MySQLUserRepository) List(
	ctx context.Context,
	cursor *domain.ListCursor,
	limit int,
) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_hash, role, is_active, created_at, updated_at
			  FROM users
			  ORDER BY created_at, id
			  LIMIT ?`
	args := []any{limit}

	if cursor != nil {
		query = `SELECT id, username, password_hash, role, is_active, created_at, updated_at
				 FROM users
				 WHERE created_at > ? OR (created_at = ? AND id > ?)
				 ORDER BY created_at, id
				 LIMIT ?`
		args = []any{cursor.CreatedAt, cursor.CreatedAt, cursor.ID, limit}
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.IsActive,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user row")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user rows")
	}

	return users, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

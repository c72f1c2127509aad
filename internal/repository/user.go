package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"corrigeaqui/internal/model"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hashed, cpf, phone_number, subtitle, verified, avatar, role, created_at, updated_at`

// Create inserts a new user and fills in the generated ID and timestamps.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (name, email, password_hashed, cpf, phone_number, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.PasswordHashed, user.CPF, user.PhoneNumber, user.Role)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return model.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// GetSummaries batch-loads public author fields. Missing IDs are simply
// absent from the map; callers fall back to placeholder display fields.
func (r *userRepository) GetSummaries(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
	result := make(map[int64]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var summaries []model.UserSummary
	query := `SELECT id, name, subtitle, verified, avatar FROM users WHERE id = ANY($1)`
	if err := r.db.SelectContext(ctx, &summaries, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("get user summaries: %w", err)
	}
	for _, s := range summaries {
		result[s.ID] = s
	}
	return result, nil
}

// Patch updates the mutable profile fields and returns the new snapshot.
func (r *userRepository) Patch(ctx context.Context, id int64, req model.PatchUserRequest) (*model.User, error) {
	var updated model.User
	query := `
		UPDATE users SET
			name         = COALESCE($2, name),
			subtitle     = COALESCE($3, subtitle),
			avatar       = COALESCE($4, avatar),
			phone_number = COALESCE($5, phone_number),
			updated_at   = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	err := r.db.GetContext(ctx, &updated, query, id, req.Name, req.Subtitle, req.Avatar, req.Phone)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patch user: %w", err)
	}
	return &updated, nil
}

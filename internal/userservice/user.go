package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/inkpost/internal/common"
)

var (
	ErrDuplicateUsername = fmt.Errorf("duplicate username: %w", common.ErrConflict)
	ErrDuplicateEmail    = fmt.Errorf("duplicate email: %w", common.ErrConflict)
	ErrNotFound          = errors.New("email not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (fullname, email, username, password, profile_img)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, joined_at`

	args := []any{
		u.Fullname,
		u.Email,
		u.Username,
		u.Password.hash,
		u.ProfileImg,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.JoinedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		case common.UniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *DBModel) usernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (m *DBModel) getUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, fullname, email, username, password, profile_img, total_posts, total_reads, blogs, joined_at
		FROM users
		WHERE email = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.Fullname,
		&u.Email,
		&u.Username,
		&u.Password.hash,
		&u.ProfileImg,
		&u.TotalPosts,
		&u.TotalReads,
		pq.Array(&u.Blogs),
		&u.JoinedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

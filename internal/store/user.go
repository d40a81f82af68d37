package store

import (
	"context"
	"errors"
	"fmt"

	"admin-form/internal/database"
	"admin-form/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateUser 使用者名稱或 Email 已存在
var ErrDuplicateUser = errors.New("username or email already exists")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func GetUserByUsername(ctx context.Context, db database.DB, username string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, phone, role, newsletter, created_at
		 FROM users WHERE username = $1`,
		username,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Role,
		&u.Newsletter,
		&u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, phone, role, newsletter)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Phone,
		string(u.Role),
		u.Newsletter,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("CreateUser: %w", ErrDuplicateUser)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// AddNewsletterSubscriber 重複訂閱視為成功
func AddNewsletterSubscriber(ctx context.Context, db database.DB, userID int, email string) error {
	_, err := db.Exec(ctx,
		`INSERT INTO newsletter_subscribers (user_id, email)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
		email,
	)
	if err != nil {
		return fmt.Errorf("AddNewsletterSubscriber: %w", err)
	}
	return nil
}

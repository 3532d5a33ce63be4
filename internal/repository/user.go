package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goaltrack/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsOther(ctx context.Context, excludeID, username, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, name, bio, role, company, linkedin, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Bio,
		user.CurrentRole,
		user.Company,
		user.LinkedIn,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return uniqueViolation(err)
}

func (r *userRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	return r.one(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.one(ctx, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *userRepository) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.one(ctx, `SELECT * FROM users WHERE username = $1`, username)
}

func (r *userRepository) one(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}

	err := r.db.GetContext(ctx, user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ExistsOther reports whether a user other than excludeID already has the
// given username or email. Empty values are not matched.
func (r *userRepository) ExistsOther(ctx context.Context, excludeID, username, email string) (bool, error) {
	var conds []string
	args := []any{excludeID}
	if username != "" {
		args = append(args, username)
		conds = append(conds, "username = $"+strconv.Itoa(len(args)))
	}
	if email != "" {
		args = append(args, email)
		conds = append(conds, "email = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return false, nil
	}

	query := `SELECT COUNT(*) FROM users WHERE id <> $1 AND (` + strings.Join(conds, " OR ") + `)`

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile applies the non-empty fields of update and bumps updated_at.
func (r *userRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) error {
	fields := []struct {
		column string
		value  string
	}{
		{"username", update.Username},
		{"email", update.Email},
		{"name", update.Name},
		{"bio", update.Bio},
		{"role", update.CurrentRole},
		{"company", update.Company},
		{"linkedin", update.LinkedIn},
	}

	args := []any{time.Now()}
	sets := []string{"updated_at = $1"}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		args = append(args, f.value)
		sets = append(sets, f.column+" = $"+strconv.Itoa(len(args)))
	}
	args = append(args, id)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return uniqueViolation(err)
	}
	return expectRow(result, ErrUserNotFound)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return err
	}
	return expectRow(result, ErrUserNotFound)
}

// uniqueViolation maps unique index failures (SQLite and PostgreSQL wording) to
// the matching sentinel error.
func uniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "UNIQUE constraint failed") && !strings.Contains(errStr, "duplicate key value") {
		return err
	}
	if strings.Contains(errStr, "username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

func expectRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

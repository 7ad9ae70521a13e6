package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/users"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, student_number, full_name, year, block, last_active`

func scanUser(row *sql.Row) (*nexus.User, error) {
	var (
		u          nexus.User
		year       sql.NullString
		block      sql.NullString
		lastActive sql.NullTime
	)

	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.StudentNumber,
		&u.FullName, &year, &block, &lastActive)
	if err != nil {
		return nil, err
	}

	u.Year = nexus.Year(year.String)
	u.Block = block.String
	if lastActive.Valid {
		t := lastActive.Time
		u.LastActive = &t
	}

	return &u, nil
}

func (repo *UserRepository) UserByEmail(ctx context.Context, email string) (*nexus.User, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}

	return u, err
}

func (repo *UserRepository) UserByID(ctx context.Context, id int64) (*nexus.User, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}

	return u, err
}

func (repo *UserRepository) UpdateLastActive(ctx context.Context, id int64, t time.Time) error {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE users SET last_active = ? WHERE id = ?`, t, id)
	return err
}

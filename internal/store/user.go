package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jobdeck/jobdeck/types"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// UserRepository handles persistence for registered identities.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmailAndPassword returns the user matching both fields exactly.
// The comparison is against the stored plaintext password; see types.User.
func (r *UserRepository) FindByEmailAndPassword(ctx context.Context, email, password string) (types.User, error) {
	const query = `
		SELECT id, name, email, password, dob, age, created_at
		FROM users
		WHERE email = $1 AND password = $2`
	var user types.User
	err := r.db.QueryRowContext(ctx, query, email, password).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.DOB,
		&user.Age,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// Create inserts a new user. A duplicate email yields ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.CreatedAt = time.Now()

	const query = `
		INSERT INTO users (id, name, email, password, dob, age, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.DOB,
		user.Age,
		user.CreatedAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return types.User{}, ErrConflict
		}
		return types.User{}, err
	}
	return user, nil
}

// ListAll returns every registered user in creation order.
func (r *UserRepository) ListAll(ctx context.Context) ([]types.User, error) {
	const query = `
		SELECT id, name, email, password, dob, age, created_at
		FROM users
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []types.User{}
	for rows.Next() {
		var user types.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Password,
			&user.DOB,
			&user.Age,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

package db

import (
	"context"
)

// CreateUser inserts a new user row. The password is stored as given; hashing
// is the caller's concern. Returns ErrDuplicateUsername on a taken name.
func (d *DB) CreateUser(ctx context.Context, username, password string) (*User, error) {
	u := &User{Username: username, Password: password}
	err := d.Db.QueryRowContext(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id`,
		username, password).Scan(&u.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// UserByUsername returns the full row including the stored credential, for
// login verification. Returns ErrNotFound for an unknown name.
func (d *DB) UserByUsername(ctx context.Context, username string) (*User, error) {
	u := &User{}
	err := d.Db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (d *DB) UserByID(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	err := d.Db.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Username)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// ListUsersExcept returns every user except the given one, ordered by id.
// These are the selectable conversation peers.
func (d *DB) ListUsersExcept(ctx context.Context, id int64) ([]*User, error) {
	rows, err := d.Db.QueryContext(ctx,
		`SELECT id, username FROM users WHERE id != $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

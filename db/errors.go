package db

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means the target row does not exist.
	ErrNotFound = errors.New("db: not found")

	// ErrForbidden means the row exists but is owned by someone else. Delete
	// paths report it so callers can tell an ownership mismatch apart from a
	// missing row, even when both share an external status code.
	ErrForbidden = errors.New("db: not owner")

	// ErrDuplicateUsername is the unique-violation on users.username.
	ErrDuplicateUsername = errors.New("db: username already taken")

	// ErrConstraint covers foreign-key violations, e.g. a comment referencing
	// a post that no longer exists.
	ErrConstraint = errors.New("db: constraint violated")
)

// mapError translates driver errors into the package sentinels. Postgres
// errors carry a code class; the sqlite3 test driver is matched on message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	if perr, ok := err.(*pq.Error); ok {
		switch perr.Code.Name() {
		case "unique_violation":
			return ErrDuplicateUsername
		case "foreign_key_violation", "not_null_violation":
			return ErrConstraint
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return ErrConstraint
	}
	return err
}

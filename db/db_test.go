package db_test

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/waveboard-app/waveboard-backend/db"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()

	d, err := db.Init(db.Config{
		Driver: "sqlite3",
		DSN:    ":memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func mustCreateUser(t *testing.T, d *db.DB, username string) *db.User {
	t.Helper()
	u, err := d.CreateUser(context.Background(), username, "hash-"+username)
	require.NoError(t, err)
	return u
}

func TestCreateUser(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	u, err := d.CreateUser(ctx, "alice", "secret-hash")
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.Equal(t, "alice", u.Username)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	mustCreateUser(t, d, "alice")
	_, err := d.CreateUser(ctx, "alice", "other-hash")
	require.ErrorIs(t, err, db.ErrDuplicateUsername)

	// no second row appeared
	users, err := d.ListUsersExcept(ctx, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestUserByUsername_NotFound(t *testing.T) {
	d := newTestDB(t)

	_, err := d.UserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestUserByID(t *testing.T) {
	d := newTestDB(t)
	alice := mustCreateUser(t, d, "alice")

	u, err := d.UserByID(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
}

func TestListUsersExcept(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, d, "alice")
	mustCreateUser(t, d, "bob")
	mustCreateUser(t, d, "carol")

	peers, err := d.ListUsersExcept(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, peers, 2)
	for _, p := range peers {
		require.NotEqual(t, alice.ID, p.ID)
		require.Empty(t, p.Password)
	}
}

package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/waveboard-app/waveboard-backend/db"
)

func TestCreatePostThenFeed(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, d, "alice")

	id, err := d.CreatePost(ctx, alice.ID, "Hi", "World", "")
	require.NoError(t, err)
	require.NotZero(t, id)

	posts, err := d.FetchFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Hi", posts[0].Title)
	require.Equal(t, "World", posts[0].Content)
	require.Equal(t, "alice", posts[0].Username)
	require.Empty(t, posts[0].Image)
	require.Empty(t, posts[0].Comments)
}

func TestFeed_OrderAndNestedComments(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, d, "alice")
	bob := mustCreateUser(t, d, "bob")

	first, err := d.CreatePost(ctx, alice.ID, "first", "1", "")
	require.NoError(t, err)
	second, err := d.CreatePost(ctx, bob.ID, "second", "2", "")
	require.NoError(t, err)

	c1, err := d.CreateComment(ctx, bob.ID, first, "nice!")
	require.NoError(t, err)
	c2, err := d.CreateComment(ctx, alice.ID, first, "thanks")
	require.NoError(t, err)

	posts, err := d.FetchFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// insertion order, ascending
	require.Equal(t, first, posts[0].ID)
	require.Equal(t, second, posts[1].ID)

	// comments nested under their post, in creation order, with author names
	require.Len(t, posts[0].Comments, 2)
	require.Equal(t, c1, posts[0].Comments[0].ID)
	require.Equal(t, "bob", posts[0].Comments[0].Username)
	require.Equal(t, c2, posts[0].Comments[1].ID)
	require.Empty(t, posts[1].Comments)
}

func TestCreateComment_MissingPost(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, d, "alice")

	_, err := d.CreateComment(ctx, alice.ID, 9999, "hello?")
	require.ErrorIs(t, err, db.ErrConstraint)
}

func TestDeletePost_NonOwnerForbidden(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, d, "alice")
	bob := mustCreateUser(t, d, "bob")

	id, err := d.CreatePost(ctx, alice.ID, "mine", "body", "")
	require.NoError(t, err)

	err = d.DeletePost(ctx, bob.ID, id)
	require.ErrorIs(t, err, db.ErrForbidden)

	// row left intact
	posts, err := d.FetchFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestDeletePost_OwnerThenIdempotence(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, d, "alice")

	id, err := d.CreatePost(ctx, alice.ID, "mine", "body", "")
	require.NoError(t, err)

	require.NoError(t, d.DeletePost(ctx, alice.ID, id))

	posts, err := d.FetchFeed(ctx)
	require.NoError(t, err)
	require.Empty(t, posts)

	// second delete reports the row missing rather than double-removing
	err = d.DeletePost(ctx, alice.ID, id)
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestDeleteComment_OwnershipIsCommentAuthor(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, d, "alice")
	bob := mustCreateUser(t, d, "bob")

	post, err := d.CreatePost(ctx, alice.ID, "t", "c", "")
	require.NoError(t, err)
	comment, err := d.CreateComment(ctx, bob.ID, post, "mine")
	require.NoError(t, err)

	// the post author does not own the comment
	err = d.DeleteComment(ctx, alice.ID, comment)
	require.ErrorIs(t, err, db.ErrForbidden)

	require.NoError(t, d.DeleteComment(ctx, bob.ID, comment))
}

func TestDeletePost_RemovesNestedComments(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	alice := mustCreateUser(t, d, "alice")
	bob := mustCreateUser(t, d, "bob")

	post, err := d.CreatePost(ctx, alice.ID, "t", "c", "")
	require.NoError(t, err)
	_, err = d.CreateComment(ctx, bob.ID, post, "nice!")
	require.NoError(t, err)

	require.NoError(t, d.DeletePost(ctx, alice.ID, post))

	posts, err := d.FetchFeed(ctx)
	require.NoError(t, err)
	require.Empty(t, posts)
}

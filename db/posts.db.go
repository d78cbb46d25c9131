package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreatePost inserts a post row. image may be empty; it is stored as NULL.
func (d *DB) CreatePost(ctx context.Context, userID int64, title, content, image string) (int64, error) {
	var id int64
	err := d.Db.QueryRowContext(ctx,
		`INSERT INTO posts (user_id, title, content, image) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, title, content, nullable(image)).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// FetchFeed returns every post in insertion order, each annotated with its
// author name and its comments in insertion order.
func (d *DB) FetchFeed(ctx context.Context) ([]*Post, error) {
	rows, err := d.Db.QueryContext(ctx,
		`SELECT posts.id, posts.user_id, posts.title, posts.content,
		        COALESCE(posts.image, ''), users.username
		 FROM posts JOIN users ON posts.user_id = users.id
		 ORDER BY posts.id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		p := &Post{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Image, &p.Username); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range posts {
		comments, err := d.fetchComments(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Comments = comments
	}
	return posts, nil
}

func (d *DB) fetchComments(ctx context.Context, postID int64) ([]*Comment, error) {
	rows, err := d.Db.QueryContext(ctx,
		`SELECT comments.id, comments.post_id, comments.user_id, comments.content, users.username
		 FROM comments JOIN users ON comments.user_id = users.id
		 WHERE comments.post_id = $1
		 ORDER BY comments.id ASC`, postID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.Username); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateComment inserts a comment. A postID that references no post fails
// with ErrConstraint via the store's foreign key, there is no pre-check.
func (d *DB) CreateComment(ctx context.Context, userID, postID int64, content string) (int64, error) {
	var id int64
	err := d.Db.QueryRowContext(ctx,
		`INSERT INTO comments (post_id, user_id, content) VALUES ($1, $2, $3) RETURNING id`,
		postID, userID, content).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// DeletePost removes a post only when requesterID authored it.
func (d *DB) DeletePost(ctx context.Context, requesterID, postID int64) error {
	return d.deleteOwned(ctx, "posts", "user_id", postID, requesterID)
}

// DeleteComment removes a comment only when requesterID authored it.
func (d *DB) DeleteComment(ctx context.Context, requesterID, commentID int64) error {
	return d.deleteOwned(ctx, "comments", "user_id", commentID, requesterID)
}

// deleteOwned deletes a single row matching both id and owner in one
// statement, then probes existence to tell ErrForbidden from ErrNotFound
// when nothing matched. Concurrent deletes of the same row race harmlessly:
// the loser sees zero rows affected.
func (d *DB) deleteOwned(ctx context.Context, table, ownerCol string, id, requesterID int64) error {
	res, err := d.exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND %s = $2`, table, ownerCol),
		id, requesterID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var one int
	err = d.Db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT 1 FROM %s WHERE id = $1`, table), id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return mapError(err)
	}
	return ErrForbidden
}

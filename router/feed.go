package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/waveboard-app/waveboard-backend/common"
	"github.com/waveboard-app/waveboard-backend/db"
)

// fetchFeed serves the public feed: every post in insertion order with its
// author name and nested comments. No session required.
func fetchFeed() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		posts, err := rc.db.FetchFeed(r.Context())
		if err != nil {
			return handleStoreError(err)
		}
		return respond(w, posts)
	}
}

// saveUpload stores the optional "image" form file and returns its public
// reference, or "" when the part is absent.
func saveUpload(rc *RouterContext, r *http.Request) (string, *HTTPError) {
	f, fh, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", &HTTPError{
			IError:    err,
			Level:     1,
			Status:    http.StatusBadRequest,
			ErrorCode: ErrParsing,
		}
	}
	defer f.Close()

	ref, err := rc.blobs.Save(r.Context(), common.SafeExt(fh.Filename), f)
	if err != nil {
		return "", &HTTPError{
			IError:    err,
			Level:     3,
			Status:    http.StatusInternalServerError,
			ErrorCode: ErrInternal,
		}
	}
	return ref, nil
}

// submitPost creates a post from a multipart form: title, content, and an
// optional image. The image is stored first; an insert failure after a
// stored blob leaves the blob orphaned.
func submitPost() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if e := parseMultipart(r); e != nil {
			return e
		}

		title := strings.TrimSpace(r.FormValue("title"))
		content := r.FormValue("content")
		if title == "" {
			return handleMissingDataError("title")
		}
		if content == "" {
			return handleMissingDataError("content")
		}

		image, e := saveUpload(rc, r)
		if e != nil {
			return e
		}

		id, err := rc.db.CreatePost(r.Context(), rc.userID, title, content, image)
		if err != nil {
			return handleStoreError(err)
		}

		return respond(w, &SubmitPostResponse{Status: OK, PostID: id, Image: image})
	}
}

func deletePost() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		id, e := pathID(r, "id")
		if e != nil {
			return e
		}
		if err := rc.db.DeletePost(r.Context(), rc.userID, id); err != nil {
			return handleStoreError(err)
		}
		return respond(w, &OkResponse{Status: OK})
	}
}

// submitComment creates a comment from a JSON body. A post_id referencing no
// post surfaces as a store failure; the foreign key is the only check.
func submitComment() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		var req commentRequest
		if e := decodeJSON(r, &req); e != nil {
			return e
		}
		if strings.TrimSpace(req.Content) == "" {
			return handleMissingDataError("content")
		}

		id, err := rc.db.CreateComment(r.Context(), rc.userID, req.PostID, req.Content)
		if err != nil {
			if errors.Is(err, db.ErrConstraint) {
				return &HTTPError{
					IError:    err,
					Level:     1,
					Status:    http.StatusInternalServerError,
					ErrorCode: ErrInternal,
				}
			}
			return handleStoreError(err)
		}

		return respond(w, &SubmitCommentResponse{Status: OK, CommentID: id})
	}
}

func deleteComment() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		id, e := pathID(r, "id")
		if e != nil {
			return e
		}
		if err := rc.db.DeleteComment(r.Context(), rc.userID, id); err != nil {
			return handleStoreError(err)
		}
		return respond(w, &OkResponse{Status: OK})
	}
}

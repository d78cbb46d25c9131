package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/waveboard-app/waveboard-backend/db"
)

// listPeers returns every user except the requester.
func listPeers() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		users, err := rc.db.ListUsersExcept(r.Context(), rc.userID)
		if err != nil {
			return handleStoreError(err)
		}
		return respond(w, users)
	}
}

// sendMessage creates a direct message from a multipart form: receiver_id,
// content, and an optional image stored before the insert.
func sendMessage() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if e := parseMultipart(r); e != nil {
			return e
		}

		receiverID, err := strconv.ParseInt(r.FormValue("receiver_id"), 10, 64)
		if err != nil {
			return handleMissingDataError("receiver_id")
		}
		content := r.FormValue("content")
		if content == "" {
			return handleMissingDataError("content")
		}

		image, e := saveUpload(rc, r)
		if e != nil {
			return e
		}

		id, err := rc.db.CreateMessage(r.Context(), rc.userID, receiverID, content, image)
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

		return respond(w, &SendMessageResponse{Status: OK, MessageID: id, Image: image})
	}
}

// fetchConversation returns the two-party message history with the peer
// named in the path, oldest first.
func fetchConversation() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		peerID, e := pathID(r, "userId")
		if e != nil {
			return e
		}
		msgs, err := rc.db.Conversation(r.Context(), rc.userID, peerID)
		if err != nil {
			return handleStoreError(err)
		}
		return respond(w, msgs)
	}
}

// deleteMessage retracts a message. Only the sender may do this.
func deleteMessage() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		id, e := pathID(r, "id")
		if e != nil {
			return e
		}
		if err := rc.db.DeleteMessage(r.Context(), rc.userID, id); err != nil {
			return handleStoreError(err)
		}
		return respond(w, &OkResponse{Status: OK})
	}
}

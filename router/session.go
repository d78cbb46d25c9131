package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/waveboard-app/waveboard-backend/db"
	"github.com/waveboard-app/waveboard-backend/log"
	"github.com/waveboard-app/waveboard-backend/session"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "session"

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// resolveSession binds the request to a user identity through the session
// provider. An absent or stale token leaves the request anonymous; gating
// is requireAuth's job.
func resolveSession() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		c, err := r.Cookie(SessionCookie)
		if err != nil || c.Value == "" {
			return nil
		}

		id, err := rc.sess.Resolve(r.Context(), c.Value)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return nil
			}
			return &HTTPError{
				IError:    err,
				Level:     3,
				Status:    http.StatusInternalServerError,
				ErrorCode: ErrInternal,
			}
		}
		rc.userID = id
		return nil
	}
}

// requireAuth rejects requests that resolveSession left anonymous.
func requireAuth() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if rc.userID == 0 {
			return &HTTPError{
				IError:    errors.New("no session"),
				Level:     1,
				Status:    http.StatusUnauthorized,
				ErrorCode: ErrUnauthenticated,
			}
		}
		return nil
	}
}

// currentSession reports the identity behind the session, or an anonymous
// marker. It never rejects.
func currentSession() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if rc.userID == 0 {
			return respond(w, &SessionResponse{Status: OK, Anonymous: true})
		}

		u, err := rc.db.UserByID(r.Context(), rc.userID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				// session outlived the user row
				return respond(w, &SessionResponse{Status: OK, Anonymous: true})
			}
			return handleStoreError(err)
		}
		return respond(w, &SessionResponse{Status: OK, ID: u.ID, Username: u.Username})
	}
}

// register creates a user and establishes a session in one step. A taken
// username fails with 400 and leaves any existing session untouched.
func register() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		var req credentialsRequest
		if e := decodeJSON(r, &req); e != nil {
			return e
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			return handleMissingDataError("username")
		}
		if req.Password == "" {
			return handleMissingDataError("password")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return &HTTPError{
				IError:    err,
				Level:     3,
				Status:    http.StatusInternalServerError,
				ErrorCode: ErrInternal,
			}
		}

		u, err := rc.db.CreateUser(r.Context(), req.Username, string(hash))
		if err != nil {
			if errors.Is(err, db.ErrDuplicateUsername) {
				return &HTTPError{
					IError:    err,
					Error:     "username already taken",
					Level:     1,
					Status:    http.StatusBadRequest,
					ErrorCode: ErrDuplicate,
				}
			}
			return handleStoreError(err)
		}

		token, err := rc.sess.Create(r.Context(), u.ID)
		if err != nil {
			return &HTTPError{
				IError:    err,
				Level:     3,
				Status:    http.StatusInternalServerError,
				ErrorCode: ErrInternal,
			}
		}
		setSessionCookie(w, token)

		return respond(w, &SessionResponse{Status: OK, ID: u.ID, Username: u.Username})
	}
}

// login verifies credentials and establishes a session.
func login() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		var req credentialsRequest
		if e := decodeJSON(r, &req); e != nil {
			return e
		}

		badCredentials := &HTTPError{
			IError:    errors.New("bad credentials for " + req.Username),
			Error:     "incorrect username or password",
			Level:     1,
			Status:    http.StatusUnauthorized,
			ErrorCode: ErrBadCredentials,
		}

		u, err := rc.db.UserByUsername(r.Context(), req.Username)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return badCredentials
			}
			return handleStoreError(err)
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
			return badCredentials
		}

		token, err := rc.sess.Create(r.Context(), u.ID)
		if err != nil {
			return &HTTPError{
				IError:    err,
				Level:     3,
				Status:    http.StatusInternalServerError,
				ErrorCode: ErrInternal,
			}
		}
		setSessionCookie(w, token)

		return respond(w, &SessionResponse{Status: OK, ID: u.ID, Username: u.Username})
	}
}

// logout destroys the session if there is one and always succeeds.
func logout() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			if err := rc.sess.Destroy(r.Context(), c.Value); err != nil {
				log.Warn.Printf("%v: %s\n", err, err)
			}
		}
		clearSessionCookie(w)
		return respond(w, &OkResponse{Status: OK})
	}
}

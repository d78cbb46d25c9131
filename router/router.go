package router

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/waveboard-app/waveboard-backend/blob"
	"github.com/waveboard-app/waveboard-backend/db"
	"github.com/waveboard-app/waveboard-backend/log"
	"github.com/waveboard-app/waveboard-backend/session"
)

// Deps carries the external collaborators every handler chain can reach.
type Deps struct {
	DB       *db.DB
	Sessions session.Provider
	Blobs    blob.Store

	// UploadDir, when set, is served read-only under /uploads/.
	UploadDir string
}

// RouterContext is built fresh for every request and threaded through the
// handler chain. userID is zero until resolveSession runs.
type RouterContext struct {
	db     *db.DB
	sess   session.Provider
	blobs  blob.Store
	userID int64
}

type HTTPError struct {
	Level     int    `json:"-"`
	IError    error  `json:"-"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

type Handler func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError

func Handle(d Deps, handlers ...Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		rc := &RouterContext{
			db:    d.DB,
			sess:  d.Sessions,
			blobs: d.Blobs,
		}
		w.Header().Add("Content-Type", "application/json")

		for _, handler := range handlers {
			e := handler(rc, w, r)
			if e != nil {

				// 3 Levels of errors
				// Level 1: Don't log anything on server, Only return a response to the user
				// Level 2: Log the error as warning on the server, But don't send a response or close the request
				// Level 3: Log the request, Cancel the request from going any further and return an appropriate response
				switch e.Level {
				case 1:
					w.WriteHeader(e.Status)
					err := json.NewEncoder(w).Encode(e)
					if err != nil {
						w.Header().Set("Content-Type", "text/plain")
						w.Write([]byte(http.StatusText(http.StatusInternalServerError)))
					}
					return

				case 2:
					log.Warn.Printf("%v: %s\n", e.IError, e.IError)

				case 3:
					log.Error.Printf("%v: %s\n", e.IError, e.IError)
					w.WriteHeader(e.Status)
					err := json.NewEncoder(w).Encode(e)
					if err != nil {
						log.Error.Printf("%v: %s\n", err, err)
						w.Header().Set("Content-Type", "text/plain")
						w.Write([]byte(http.StatusText(http.StatusInternalServerError)))
					}
					return
				}
			}
		}
	})
}

func Init(d Deps) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/session", Handle(d,
		resolveSession(),
		currentSession(),
	)).Methods("GET")

	r.Handle("/register", Handle(d,
		register(),
	)).Methods("POST")

	r.Handle("/login", Handle(d,
		login(),
	)).Methods("POST")

	r.Handle("/logout", Handle(d,
		logout(),
	)).Methods("GET")

	r.Handle("/feed", Handle(d,
		fetchFeed(),
	)).Methods("GET")

	r.Handle("/post", Handle(d,
		resolveSession(), requireAuth(),
		submitPost(),
	)).Methods("POST")

	r.Handle("/post/{id}", Handle(d,
		resolveSession(), requireAuth(),
		deletePost(),
	)).Methods("DELETE")

	r.Handle("/comment", Handle(d,
		resolveSession(), requireAuth(),
		submitComment(),
	)).Methods("POST")

	r.Handle("/comment/{id}", Handle(d,
		resolveSession(), requireAuth(),
		deleteComment(),
	)).Methods("DELETE")

	r.Handle("/users", Handle(d,
		resolveSession(), requireAuth(),
		listPeers(),
	)).Methods("GET")

	r.Handle("/message", Handle(d,
		resolveSession(), requireAuth(),
		sendMessage(),
	)).Methods("POST")

	r.Handle("/messages/{userId}", Handle(d,
		resolveSession(), requireAuth(),
		fetchConversation(),
	)).Methods("GET")

	r.Handle("/message/{id}", Handle(d,
		resolveSession(), requireAuth(),
		deleteMessage(),
	)).Methods("DELETE")

	if d.UploadDir != "" {
		r.PathPrefix(blob.PublicPrefix).Handler(
			http.StripPrefix(blob.PublicPrefix, http.FileServer(http.Dir(d.UploadDir))))
	}

	return r
}

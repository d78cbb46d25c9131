package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/waveboard-app/waveboard-backend/db"
)

// maxUploadMemory caps the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20

// decodeJSON decodes a JSON request body into v
func decodeJSON(r *http.Request, v interface{}) *HTTPError {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &HTTPError{
			IError:    err,
			Level:     1,
			Status:    http.StatusBadRequest,
			ErrorCode: ErrParsing,
		}
	}
	return nil
}

// parseMultipart parses the multipart form in a request and handles the error appropriately
func parseMultipart(r *http.Request) *HTTPError {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return &HTTPError{
			IError:    err,
			Level:     1,
			Status:    http.StatusBadRequest,
			ErrorCode: ErrParsing,
		}
	}
	return nil
}

// pathID parses the named {var} route segment as an id
func pathID(r *http.Request, name string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, &HTTPError{
			IError:    err,
			Level:     1,
			Status:    http.StatusBadRequest,
			ErrorCode: ErrInvalidData,
		}
	}
	return id, nil
}

func handleJSONError(err error) *HTTPError {
	return &HTTPError{
		ErrorCode: ErrInternal,
		IError:    err,
		Level:     3,
		Status:    http.StatusInternalServerError,
	}
}

// handleMissingDataError takes name of data that is missing or invalid and return *HTTPError
func handleMissingDataError(v string) *HTTPError {
	return &HTTPError{
		IError:    errors.New("missing " + v),
		Error:     "missing " + v,
		Level:     1,
		Status:    http.StatusBadRequest,
		ErrorCode: ErrInvalidData,
	}
}

// handleStoreError maps db sentinels to their external statuses. Ownership
// mismatch and missing row share 403 on the wire.
func handleStoreError(err error) *HTTPError {
	switch {
	case errors.Is(err, db.ErrForbidden), errors.Is(err, db.ErrNotFound):
		return &HTTPError{
			IError:    err,
			Level:     1,
			Status:    http.StatusForbidden,
			ErrorCode: ErrForbidden,
		}
	default:
		return &HTTPError{
			IError:    err,
			Level:     3,
			Status:    http.StatusInternalServerError,
			ErrorCode: ErrInternal,
		}
	}
}

// respond encodes v, reporting an encode failure as an internal error
func respond(w http.ResponseWriter, v interface{}) *HTTPError {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return handleJSONError(err)
	}
	return nil
}

package common

import (
	"errors"
	"net/http"

	"github.com/matst80/slask-view/pkg/common/jsoncompat"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/types"
)

// HttpError carries the status a handler wants to answer with.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(status int, err error) *HttpError {
	return &HttpError{Status: status, Err: err}
}

type JsonHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string) error

// JsonHandler answers CORS preflights, resolves the session and turns
// returned errors into JSON error responses.
func JsonHandler(trk types.Tracking, log logger.Logger, fn JsonHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)

		err := fn(w, r, sessionId)
		if err != nil {
			status := http.StatusInternalServerError
			var httpErr *HttpError
			if errors.As(err, &httpErr) {
				status = httpErr.Status
			}
			log.Error("error handling request", "path", r.URL.Path, "status", status, "err", err)
			WriteJson(w, status, map[string]string{"error": err.Error()})
		}
	}
}

func WriteJson(w http.ResponseWriter, status int, data any) error {
	bytes, err := jsoncompat.Marshal(data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(bytes)
	return err
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}

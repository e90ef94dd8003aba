package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/nvellon/hal"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes the value v to the http response as json encoding. The
// error is written as problem.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	switch t := v.(type) {
	case HALResource:
		w.Header().Set("Content-Type", "application/hal+json")
		v = t.Resource()
	case Problem:
		w.Header().Set("Content-Type", ProblemContentType)
	case error:
		w.Header().Set("Content-Type", ProblemContentType)
		v = NewErrorProblem(t, code)
	default:
		w.Header().Set("Content-Type", "application/json")
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.WriteHeader(code)
	_, err = w.Write(bs)

	return err
}

// WriteJSONError writes the error as problem with the status code of the
// error.
func WriteJSONError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if e := WriteJSON(w, code, err); e != nil {
		log.Error("failed to write error", "error", err, "write-error", e)
	}
}

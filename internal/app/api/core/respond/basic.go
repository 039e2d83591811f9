// Package respond provides a set of utility functions to help with the HTTP response handling.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/manqiyou/manqiyou/internal/app/api/core/envelope"
)

// TotalCountHeader carries the total number of records of a paged result.
const TotalCountHeader = "X-Total-Count"

// JSON writes a JSON response with the given status code and data.
// If data is nil, the response will null. The status code is set to the given code.
// The Content-Type header is set to application/json.
// All encoding errors are silently ignored.
func JSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// if no data was given, simply return null
	if data == nil {
		w.WriteHeader(code)
		_, _ = w.Write([]byte("null"))
		return
	}

	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(data)
}

// Envelope writes the given envelope as JSON. The HTTP status code is taken from the envelope.
func Envelope(w http.ResponseWriter, env envelope.Enveloped) {
	JSON(w, env.StatusCode(), env)
}

// TotalCount sets the X-Total-Count header. It must be called before the body is written.
func TotalCount(w http.ResponseWriter, total int64) {
	w.Header().Set(TotalCountHeader, strconv.FormatInt(total, 10))
}

package logging

import (
	"net/http"
)

// writerWrapper wraps a http.ResponseWriter and tracks the number of bytes written to it.
// It also tracks the http response code passed to the WriteHeader func of
// the ResponseWriter.
type writerWrapper struct {
	http.ResponseWriter

	// StatusCode is the first http response code passed to the WriteHeader func of
	// the ResponseWriter. If no such call is made, a default code of http.StatusOK
	// is assumed instead.
	StatusCode int

	// WrittenBytes is the number of bytes successfully written by the Write
	// function of the ResponseWriter.
	WrittenBytes int64

	wroteHeader bool
}

// WriteHeader wraps the WriteHeader method of the ResponseWriter and tracks the
// http response code passed to it. Only the first call is recorded, like net/http does.
func (w *writerWrapper) WriteHeader(code int) {
	if !w.wroteHeader {
		w.StatusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write wraps the Write method of the ResponseWriter and tracks the number of bytes
// written to it.
func (w *writerWrapper) Write(data []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(data)
	w.WrittenBytes += int64(n)
	return n, err
}

// Unwrap returns the wrapped writer, it is used by http.ResponseController.
func (w *writerWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// newWriterWrapper returns a new writerWrapper that wraps the given http.ResponseWriter.
// It initializes the StatusCode to http.StatusOK.
func newWriterWrapper(w http.ResponseWriter) *writerWrapper {
	return &writerWrapper{ResponseWriter: w, StatusCode: http.StatusOK}
}

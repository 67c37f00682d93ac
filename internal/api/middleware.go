package api

import (
	"log"
	"net/http"
	"time"

	"go.uber.org/atomic"
)

var (
	requestCount = atomic.NewInt64(0)
	errorCount   = atomic.NewInt64(0)
)

// statusWriter captures the final HTTP status code and number of bytes
// written, distinguishing "handler returned" from "client got a response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// loggingMiddleware logs request duration, response size, and running
// request/error totals.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{
			ResponseWriter: w,
			status:         0,
		}

		next.ServeHTTP(sw, r)

		total := requestCount.Inc()
		if sw.status >= http.StatusInternalServerError {
			errorCount.Inc()
		}

		duration := time.Since(start).Milliseconds()

		log.Printf(
			"method=%s path=%s status=%d bytes=%d dur=%dms total=%d errors=%d",
			r.Method, r.URL.RequestURI(), sw.status, sw.bytes, duration,
			total, errorCount.Load(),
		)
	})
}

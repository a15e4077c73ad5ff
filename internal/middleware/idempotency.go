package middleware

import (
	"bytes"
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

const maxReplayBodySize = 1 << 20

// ReplayEntry is a cached HTTP response for an idempotency key.
type ReplayEntry struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// ReplayStore caches responses keyed by Idempotency-Key header value.
// It is a convenience for HTTP clients that retry; the authoritative
// duplicate guard is the unique reference constraint in the database.
type ReplayStore interface {
	Get(ctx context.Context, key string) (*ReplayEntry, error)
	Set(ctx context.Context, key string, entry *ReplayEntry) error
}

// Idempotency replays a cached response when a request repeats an
// Idempotency-Key. Requests without the header pass through untouched.
// Cache writes are best-effort; a failed write is logged, not surfaced.
func Idempotency(store ReplayStore, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if entry, err := store.Get(r.Context(), key); err == nil && entry != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Replayed", "true")
				w.WriteHeader(entry.Status)
				w.Write(entry.Body)
				return
			}

			rec := &responseRecorder{ResponseWriter: w, body: &bytes.Buffer{}, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Server errors are retryable, so only definitive responses
			// are cached.
			if rec.statusCode >= 200 && rec.statusCode < 500 && !rec.bodyTruncated {
				err := store.Set(r.Context(), key, &ReplayEntry{
					Status: rec.statusCode,
					Body:   rec.body.Bytes(),
				})
				if err != nil {
					logger.Warn().Err(err).Msg("failed to cache idempotent response")
				}
			}
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode    int
	body          *bytes.Buffer
	bodyTruncated bool
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.bodyTruncated {
		if r.body.Len()+len(b) > maxReplayBodySize {
			r.bodyTruncated = true
		} else {
			r.body.Write(b)
		}
	}
	return r.ResponseWriter.Write(b)
}

package middleware

import (
	"net/http"
	"sync"
)

// SingleWriter gives the request path the host model the post core expects:
// at most one mutating call at a time, and no reads while a mutation runs.
type SingleWriter struct {
	mu sync.RWMutex
}

// NewSingleWriter creates a new SingleWriter
func NewSingleWriter() *SingleWriter {
	return &SingleWriter{}
}

// Write runs next with exclusive access
func (s *SingleWriter) Write(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Read runs next alongside other readers
func (s *SingleWriter) Read(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		next.ServeHTTP(w, r)
	})
}

// Exclusive runs fn with exclusive access, e.g. to capture a snapshot
func (s *SingleWriter) Exclusive(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

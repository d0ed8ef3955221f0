package middleware

import (
	"net/http"

	"github.com/skillsenselab/meetscribe/util"
)

// Meeting recordings are large; the default limit must accommodate a
// multi-hour audio upload.
const defaultMaxBodySize = 512 * 1024 * 1024 // 512MB

// BodySizeLimit returns middleware that restricts the request body to the
// given size string (e.g. "512MB", "1GB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import "net/http"

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerReferrerPolicy          = "Referrer-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers. HSTS is only sent
// when hsts is true, since it pins the browser to HTTPS.
func SecurityHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(headerXContentTypeOptions, "nosniff")
			w.Header().Set(headerXFrameOptions, "DENY")
			w.Header().Set(headerReferrerPolicy, "no-referrer")
			if hsts {
				w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

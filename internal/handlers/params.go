package handlers

import "net/http"

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// callerIdentity reads the reviewer id and role that the JWT middleware
// stored in the request context. Both are zero values when the request
// skipped the auth middleware.
func callerIdentity(r *http.Request) (int, string) {
	id, _ := r.Context().Value("reviewer_id").(int)
	role, _ := r.Context().Value("role").(string)
	return id, role
}

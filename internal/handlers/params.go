package handlers

import "net/http"

// getParam returns a route parameter captured by pat, which stores it in
// the query under a leading colon. Absent parameters read as "".
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	return r.URL.Query().Get(":" + name)
}

package request

import (
	"net/http"
	"strconv"
)

// GetQueryString returns a string query parameter or the default value
func GetQueryString(r *http.Request, key string, defaultVal string) string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// GetQueryInt returns an integer query parameter or the default value
func GetQueryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return intVal
}

// GetPage parses the page query parameter: absent or non-numeric values
// become 1, and anything below 1 is clamped up to 1.
func GetPage(r *http.Request) int {
	page := GetQueryInt(r, "page", 1)
	if page < 1 {
		return 1
	}
	return page
}

package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// queryString binds a form-style string query parameter.
func queryString(r *http.Request, name string, required bool) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), &v); err != nil {
		return "", fmt.Errorf("bind %s: %w", name, err)
	}
	if v == nil {
		return "", nil
	}
	if required && *v == "" {
		return "", fmt.Errorf("query parameter %q must not be empty", name)
	}
	return *v, nil
}

// queryLimit binds ?limit=. Absent yields def; present values must be in [1, max].
func queryLimit(r *http.Request, def, maxLimit int) (int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &v); err != nil {
		return 0, fmt.Errorf("bind limit: %w", err)
	}
	if v == nil {
		return def, nil
	}
	if *v < 1 || *v > maxLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}
	return *v, nil
}

// queryBool binds an optional boolean parameter.
func queryBool(r *http.Request, name string) (bool, error) {
	var v *bool
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return false, fmt.Errorf("bind %s: %w", name, err)
	}
	return v != nil && *v, nil
}

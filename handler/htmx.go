package handler

import "net/http"

const (
	HXRequest = "HX-Request"
	HXTarget  = "HX-Target"
	HXTrigger = "HX-Trigger"

	HXReswap = "HX-Reswap"
)

// IsHTMX reports whether r is an HTMX request.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HXRequest) == "true"
}

// HTMXTarget returns the id of the element HTMX will swap, if any.
func HTMXTarget(r *http.Request) string {
	return r.Header.Get(HXTarget)
}

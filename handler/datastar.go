package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader is the Accept header value that indicates a DataStar request
	DataStarAcceptHeader = "text/event-stream"
	// DataStarQueryParam is the query parameter used by DataStar for signals
	DataStarQueryParam = "datastar"
	// DataStarRequestHeader is sent by the DataStar client on every fetch
	DataStarRequestHeader = "Datastar-Request"
)

// Patch modes used by form responses.
const (
	PatchOuter = datastar.ElementPatchModeOuter
	PatchInner = datastar.ElementPatchModeInner
)

// IsDataStar reports whether r came from the DataStar client and expects
// server-sent events back.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

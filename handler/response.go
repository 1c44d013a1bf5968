package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// TemplOption is an alias for datastar's PatchElementOption.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the selector of the element a DataStar patch replaces.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how a DataStar patch is merged into the page.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

type templPartialResponse struct {
	status  int
	partial templ.Component
	full    templ.Component
	options []TemplOption
	signals map[string]any
}

// TemplPartial renders partial for DataStar (as an element patch, followed
// by a signal patch when signals is not empty) and HTMX requests, and full
// for everything else. status applies to non-SSE responses.
func TemplPartial(status int, partial, full templ.Component, signals map[string]any, opts ...TemplOption) Response {
	return templPartialResponse{status: status, partial: partial, full: full, options: opts, signals: signals}
}

func (t templPartialResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElementTempl(t.partial, t.options...); err != nil {
			return err
		}
		if len(t.signals) == 0 {
			return nil
		}
		data, err := json.Marshal(t.signals)
		if err != nil {
			return err
		}
		return sse.PatchSignals(data)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if IsHTMX(r) {
		// a failed submission still swaps the form in
		w.Header().Set(HXReswap, "outerHTML")
		w.WriteHeader(http.StatusOK)
		return t.partial.Render(r.Context(), w)
	}
	w.WriteHeader(t.status)
	return t.full.Render(r.Context(), w)
}

type jsonResponse struct {
	status int
	body   any
}

// JSON renders body as a JSON document with the given status.
func JSON(status int, body any) Response {
	return jsonResponse{status: status, body: body}
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// wantsJSON reports whether the client prefers JSON over HTML.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

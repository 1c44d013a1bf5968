package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rulesource"
	"github.com/dmitrymomot/formkit/pkg/ruleset"
)

// Form binds one form of the page to its rules.
type Form struct {
	// Name is the URL segment of the submit route.
	Name string
	// Selector finds the form root, e.g. "#main-form".
	Selector string
	// RulesKey is the rule source key; defaults to Name.
	RulesKey string
	// VariantField names the radio group choosing the variant of a multi
	// form. Empty for single forms.
	VariantField string
}

func (f Form) rulesKey() string {
	if f.RulesKey != "" {
		return f.RulesKey
	}
	return f.Name
}

func (f Form) submitHandler() formkit.EventHandler {
	if f.VariantField != "" {
		return formkit.ValidateSelected(f.VariantField)
	}
	return formkit.ValidateVariant("")
}

// Result is the JSON form of a submission outcome.
type Result struct {
	Form         string       `json:"form"`
	Variant      string       `json:"variant,omitempty"`
	Valid        bool         `json:"valid"`
	FailedFields []string     `json:"failed_fields"`
	Error        *ResultError `json:"error,omitempty"`
}

// ResultError carries the user facing part of a processing error.
type ResultError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the request logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithProcessorOptions adds options to every Processor the handler builds.
func WithProcessorOptions(opts ...formkit.Option) Option {
	return func(h *Handler) { h.procOpts = append(h.procOpts, opts...) }
}

// WithDecodeOptions adds options used when decoding rule documents.
func WithDecodeOptions(opts ...ruleset.DecodeOption) Option {
	return func(h *Handler) { h.decodeOpts = append(h.decodeOpts, opts...) }
}

// Handler serves a page of forms and validates their submissions. Every
// request works on its own copy of the page.
type Handler struct {
	page       []byte
	forms      map[string]Form
	source     rulesource.Source
	log        *slog.Logger
	procOpts   []formkit.Option
	decodeOpts []ruleset.DecodeOption
}

// New checks that page contains every form and returns the handler.
func New(page []byte, src rulesource.Source, forms []Form, opts ...Option) (*Handler, error) {
	if len(forms) == 0 {
		return nil, ErrNoForms
	}
	doc, err := dom.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	h := &Handler{
		page:   bytes.Clone(page),
		forms:  make(map[string]Form, len(forms)),
		source: src,
		log:    logger.Discard(),
	}
	for _, f := range forms {
		if _, dup := h.forms[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateForm, f.Name)
		}
		if doc.Query(f.Selector) == nil {
			return nil, fmt.Errorf("%w: %s (%s)", ErrFormNotFound, f.Name, f.Selector)
		}
		h.forms[f.Name] = f
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Routes mounts the page at "/" and the submit endpoint at
// "/forms/{form}".
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Page)
	r.Post("/forms/{form}", h.Submit)
	return r
}

// Page serves the untouched page.
func (h *Handler) Page(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}

// Submit fills the named form with the posted values, validates it and
// answers with the marked up form: an element patch for DataStar, the form
// alone for HTMX, a JSON result when asked for, the whole page otherwise.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "form")
	form, ok := h.forms[name]
	if !ok {
		http.Error(w, "form not found", http.StatusNotFound)
		return
	}
	log := h.log.With(logger.Form(form.Selector))

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	doc, err := dom.Parse(bytes.NewReader(h.page))
	if err != nil {
		log.ErrorContext(ctx, "page parse failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	doc.Fill(form.Selector, r.PostForm)

	spec, err := rulesource.LoadSpec(ctx, h.source, form.rulesKey(), h.decodeOpts...)
	if err != nil {
		log.ErrorContext(ctx, "rule spec unavailable", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	opts := append([]formkit.Option{
		formkit.WithLogger(log),
		formkit.WithEventHandler(formkit.EventSubmit, form.submitHandler()),
	}, h.procOpts...)
	p, err := formkit.New(doc, form.Selector, spec, opts...)
	if err != nil {
		log.ErrorContext(ctx, "form binding failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	runErr := p.Dispatch(ctx, formkit.Event{Type: formkit.EventSubmit, Values: r.PostForm})
	result := h.result(name, form, doc, p, runErr)

	if err := h.respond(result, doc, p).Render(w, r); err != nil {
		log.ErrorContext(ctx, "response render failed", logger.Error(err))
	}
}

func (h *Handler) result(name string, form Form, doc dom.Document, p *formkit.Processor, runErr error) Result {
	failed := formkit.Outcome{Failures: p.Errors()}.FailedFields()
	res := Result{
		Form:         name,
		Valid:        runErr == nil && len(failed) == 0,
		FailedFields: failed,
	}
	if form.VariantField != "" {
		res.Variant, _ = dom.CheckedValue(doc, form.VariantField)
	}
	if perr, ok := formkit.AsProcessingError(runErr); ok {
		res.Error = &ResultError{Type: perr.Type(), Message: perr.Message()}
	} else if runErr != nil {
		res.Error = &ResultError{Type: "internal", Message: formkit.GenericErrorMessage}
	}
	return res
}

func (h *Handler) respond(res Result, doc *dom.HTMLDocument, p *formkit.Processor) Response {
	status := statusFor(res)
	root, ok := p.Root().(*dom.HTMLElement)
	if !ok {
		return JSON(http.StatusInternalServerError, Result{
			Form:  res.Form,
			Error: &ResultError{Type: "internal", Message: ErrNotHTMLElement.Error()},
		})
	}
	signals := map[string]any{"formkit": res}
	target := p.Selector()
	return responder{
		result: res,
		status: status,
		html:   TemplPartial(status, Element(root), Document(doc), signals, WithTarget(target), WithPatchMode(PatchOuter)),
	}
}

// responder picks JSON for clients that ask for it.
type responder struct {
	result Result
	status int
	html   Response
}

func (rs responder) Render(w http.ResponseWriter, r *http.Request) error {
	if wantsJSON(r) && !IsDataStar(r) {
		return JSON(rs.status, rs.result).Render(w, r)
	}
	return rs.html.Render(w, r)
}

func statusFor(res Result) int {
	switch {
	case res.Error != nil:
		switch res.Error.Type {
		case formkit.ErrorTypeVariant:
			return http.StatusBadRequest
		case formkit.ErrorTypeConcurrency:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	case !res.Valid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusOK
	}
}

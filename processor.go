package formkit

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/fieldcheck"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/ruleset"
	"github.com/dmitrymomot/formkit/pkg/statemachine"
)

// State is the lifecycle state of a Processor.
type State string

const (
	StateIdle      State = "idle"
	StateResetting State = "resetting"
	StateIterating State = "iterating"
	StateComplete  State = "complete"
	StateAborted   State = "aborted"
)

type lifecycleEvent string

const (
	evReset   lifecycleEvent = "reset"
	evSettle  lifecycleEvent = "settle"
	evIterate lifecycleEvent = "iterate"
	evFinish  lifecycleEvent = "finish"
	evAbort   lifecycleEvent = "abort"
)

func newLifecycle() *statemachine.Machine[State, lifecycleEvent] {
	return statemachine.New[State, lifecycleEvent](StateIdle,
		statemachine.T(StateIdle, evReset, StateResetting),
		statemachine.T(StateComplete, evReset, StateResetting),
		statemachine.T(StateAborted, evReset, StateResetting),
		statemachine.T(StateResetting, evSettle, StateIdle),
		statemachine.T(StateResetting, evIterate, StateIterating),
		statemachine.T(StateIterating, evFinish, StateComplete),
		statemachine.T(StateIterating, evAbort, StateAborted),
	)
}

// ValidationError records one failing field of the latest run.
type ValidationError struct {
	Field string
	// Element carries the invalid class: the input for pattern rules, the
	// group container for group rules.
	Element dom.Element
	// Hint is the optional hint element, nil when the document has none.
	Hint dom.Element
}

// Outcome summarises a Validate call.
type Outcome struct {
	RunID   uuid.UUID
	Variant string
	// State is StateComplete or StateAborted, or empty when the call was
	// rejected because another run was in progress.
	State    State
	Failures []ValidationError
	// Err is set when the run was aborted or rejected.
	Err error
}

// Valid reports whether the run completed with no failing field.
func (o Outcome) Valid() bool {
	return o.State == StateComplete && len(o.Failures) == 0
}

// FailedFields returns the names of failing fields in run order.
func (o Outcome) FailedFields() []string {
	names := make([]string, 0, len(o.Failures))
	for _, f := range o.Failures {
		names = append(names, f.Field)
	}
	return names
}

// Processor validates one bound form, or one group of variant forms sharing a
// container, against its resolved rules and mirrors the result onto the
// document.
//
// A Processor owns its resolved rules and its error list. Validate and
// ResetValidity run to completion without yielding; a call that overlaps
// another one on the same Processor is rejected with ErrRunInProgress rather
// than interleaved.
type Processor struct {
	doc      dom.Document
	root     dom.Element
	selector string
	resolved ruleset.Resolved
	handlers map[string]EventHandler

	sink         ErrorSink
	log          *slog.Logger
	invalidClass string
	hintDisplay  string

	lifecycle *statemachine.Machine[State, lifecycleEvent]
	errors    []ValidationError
}

// New binds spec to the form found by selector in doc. The spec is resolved
// once here; later changes to it do not affect the processor.
func New(doc dom.Document, selector string, spec ruleset.Spec, opts ...Option) (*Processor, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	root := doc.Query(selector)
	if root == nil {
		return nil, fmt.Errorf("%w: %q", ErrRootNotFound, selector)
	}

	p := &Processor{
		doc:          doc,
		root:         root,
		selector:     selector,
		resolved:     ruleset.Resolve(spec),
		handlers:     make(map[string]EventHandler),
		log:          slog.Default(),
		invalidClass: DefaultInvalidClass,
		hintDisplay:  DefaultHintDisplay,
		lifecycle:    newLifecycle(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sink == nil {
		p.sink = LogSink(p.log)
	}
	return p, nil
}

// Root returns the bound form element.
func (p *Processor) Root() dom.Element { return p.root }

// Document returns the document the processor reads and marks.
func (p *Processor) Document() dom.Document { return p.doc }

// Selector returns the selector the processor was bound with.
func (p *Processor) Selector() string { return p.selector }

// Variants returns the variant names Validate accepts.
func (p *Processor) Variants() []string { return p.resolved.Variants() }

// State returns the current lifecycle state.
func (p *Processor) State() State { return p.lifecycle.Current() }

// Errors returns a copy of the error list of the latest run. It is not
// synchronised with a run in progress on another goroutine; use the Outcome
// returned by Validate there.
func (p *Processor) Errors() []ValidationError { return slices.Clone(p.errors) }

// ResetValidity removes every indicator recorded by the latest run and
// empties the error list. Calling it with nothing recorded is a no-op.
func (p *Processor) ResetValidity(ctx context.Context) error {
	if _, err := p.lifecycle.Fire(evReset); err != nil {
		return p.rejectOverlap(ctx, err)
	}
	p.clearIndicators()
	p.advance(evSettle)
	return nil
}

// Validate runs the rules of variant against the document. An empty variant
// selects the single-form rules ("all"). Indicators from the previous run are
// cleared first, whatever variant it validated.
//
// Invalid fields are not an error: they are reported in the outcome and on
// the document. The returned error is a ProcessingError when the run was
// aborted (unknown rule kind, unknown variant, missing element) or rejected.
// Failures recorded before an abort are kept.
func (p *Processor) Validate(ctx context.Context, variant string) (Outcome, error) {
	if variant == "" {
		variant = ruleset.GenericScope
	}
	out := Outcome{RunID: uuid.New(), Variant: variant}

	if _, err := p.lifecycle.Fire(evReset); err != nil {
		out.Err = p.rejectOverlap(ctx, err)
		return out, out.Err
	}
	p.clearIndicators()
	p.advance(evIterate)

	log := p.log.With(logger.Form(p.selector), logger.Variant(variant), logger.RunID(out.RunID))
	log.DebugContext(ctx, "validation run started")

	// p.errors belongs to this call only while the state is Iterating: read
	// it before advancing, a concurrent call may start a run right after.
	if perr := p.iterate(variant); perr != nil {
		out.State = StateAborted
		out.Failures = p.Errors()
		out.Err = *perr
		log.DebugContext(ctx, "validation run aborted", logger.Failures(len(out.Failures)), logger.ErrorType(perr.Type()))
		p.advance(evAbort)
		p.handleError(ctx, *perr)
		return out, out.Err
	}

	out.State = StateComplete
	out.Failures = p.Errors()
	log.DebugContext(ctx, "validation run finished", logger.Failures(len(out.Failures)))
	p.advance(evFinish)
	return out, nil
}

// iterate walks the variant rules in order and stops at the first field that
// cannot be evaluated.
func (p *Processor) iterate(variant string) *ProcessingError {
	rules, ok := p.resolved.Lookup(variant)
	if !ok {
		perr := newProcessingError(ErrorTypeVariant, ErrUnknownVariant,
			"Unable to find validation rules for the form variant: %s", variant)
		return &perr
	}

	for name, rule := range rules.All() {
		res, perr := p.evaluate(name, rule)
		if perr != nil {
			return perr
		}
		if !res.Valid {
			p.markInvalid(name, res.Element)
		}
	}
	return nil
}

func (p *Processor) evaluate(name string, rule ruleset.FieldRule) (fieldcheck.Result, *ProcessingError) {
	switch r := rule.(type) {
	case ruleset.PatternRule:
		if r.Regexp == nil {
			perr := newProcessingError(ErrorTypeConfiguration, ErrInvalidRule,
				"Pattern rule without an expression for the input: %s", name)
			return fieldcheck.Result{}, &perr
		}
		input := dom.FirstByName(p.doc, name)
		if input == nil {
			perr := newProcessingError(ErrorTypeConfiguration, ErrMissingElement,
				"Unable to find the input: %s", name)
			return fieldcheck.Result{}, &perr
		}
		return fieldcheck.EvaluatePattern(input, r.Regexp), nil

	case ruleset.GroupRule:
		res := fieldcheck.EvaluateGroupPresence(p.doc, name)
		if !res.Valid && res.Element == nil {
			perr := newProcessingError(ErrorTypeConfiguration, ErrMissingElement,
				"Unable to find the group container: %s", dom.GroupBoxID(name))
			return fieldcheck.Result{}, &perr
		}
		return res, nil

	case ruleset.UnknownRule:
		perr := newProcessingError(ErrorTypeValidation, ErrUnknownRuleKind,
			"Unable to find the validation type %q for the input: %s", r.Name, name)
		return fieldcheck.Result{}, &perr

	default:
		perr := newProcessingError(ErrorTypeValidation, ErrUnknownRuleKind,
			"Unable to find the validation type for the input: %s", name)
		return fieldcheck.Result{}, &perr
	}
}

func (p *Processor) markInvalid(field string, el dom.Element) {
	hint := dom.ByID(p.doc, dom.HintID(field))
	p.errors = append(p.errors, ValidationError{Field: field, Element: el, Hint: hint})

	el.AddClass(p.invalidClass)
	if hint != nil {
		hint.SetDisplay(p.hintDisplay)
	}
}

func (p *Processor) clearIndicators() {
	for _, e := range p.errors {
		e.Element.RemoveClass(p.invalidClass)
		if e.Hint != nil {
			e.Hint.SetDisplay(hiddenDisplay)
		}
	}
	p.errors = nil
}

// advance moves the lifecycle along a transition the caller already owns.
// Only the call that won evReset reaches here, so the transition exists.
func (p *Processor) advance(ev lifecycleEvent) {
	_, _ = p.lifecycle.Fire(ev)
}

func (p *Processor) rejectOverlap(ctx context.Context, cause error) error {
	perr := newProcessingError(ErrorTypeConcurrency, ErrRunInProgress,
		"Form %s is busy: %v", p.selector, cause)
	p.handleError(ctx, perr)
	return perr
}

// handleError is the single exit for processing errors.
func (p *Processor) handleError(ctx context.Context, err ProcessingError) {
	p.sink.HandleError(ctx, err)
}

package formkit_test

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/ruleset"
)

const contactPage = `<!doctype html>
<html><body>
<form id="main-form">
  <input type="radio" name="contact-type" value="enquiry">
  <input type="radio" name="contact-type" value="quote">
  <input name="form-name">
  <p id="hint-form-name" style="display: none;">Tell us your name</p>
  <input name="form-email">
  <p id="hint-form-email" style="display: none;">Enter a valid email</p>
  <textarea name="form-message"></textarea>
  <input name="form-competitor">
  <div id="form-box-website">
    <input type="radio" name="website" value="yes">
    <input type="radio" name="website" value="no">
  </div>
  <p id="hint-website" style="display: none;">Pick one</p>
</form>
<form id="single-form">
  <input name="other-name">
</form>
</body></html>`

func contactSpec() ruleset.Spec {
	return ruleset.Spec{
		ruleset.GenericScope: ruleset.NewFieldRules(
			ruleset.F("form-name", ruleset.MustPattern(`.+`)),
			ruleset.F("form-email", ruleset.MustPattern(`@`)),
		),
		"enquiry": ruleset.NewFieldRules(
			ruleset.F("form-message", ruleset.MustPattern(ruleset.ExprTenChars)),
		),
		"quote": ruleset.NewFieldRules(
			ruleset.F("form-competitor", ruleset.MustPattern(ruleset.ExprExists)),
			ruleset.F("website", ruleset.Group()),
		),
	}
}

type sinkRecorder struct {
	errs []formkit.ProcessingError
}

func (s *sinkRecorder) HandleError(_ context.Context, err formkit.ProcessingError) {
	s.errs = append(s.errs, err)
}

func setup(t *testing.T, selector string, spec ruleset.Spec, opts ...formkit.Option) (*formkit.Processor, *dom.HTMLDocument, *sinkRecorder) {
	t.Helper()
	doc, err := dom.ParseString(contactPage)
	require.NoError(t, err)

	sink := &sinkRecorder{}
	opts = append([]formkit.Option{formkit.WithErrorSink(sink), formkit.WithLogger(logger.Discard())}, opts...)
	p, err := formkit.New(doc, selector, spec, opts...)
	require.NoError(t, err)
	return p, doc, sink
}

func invalid(doc dom.Document, name string) bool {
	return dom.FirstByName(doc, name).HasClass(formkit.DefaultInvalidClass)
}

func TestNew(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(contactPage)
	require.NoError(t, err)

	_, err = formkit.New(nil, "#main-form", nil)
	assert.ErrorIs(t, err, formkit.ErrNilDocument)

	_, err = formkit.New(doc, "#missing", nil)
	assert.ErrorIs(t, err, formkit.ErrRootNotFound)

	p, err := formkit.New(doc, "#main-form", contactSpec())
	require.NoError(t, err)
	id, _ := p.Root().Attr("id")
	assert.Equal(t, "main-form", id)
	assert.Equal(t, "#main-form", p.Selector())
	assert.Equal(t, []string{"enquiry", "quote"}, p.Variants())
	assert.Equal(t, formkit.StateIdle, p.State())
	assert.Empty(t, p.Errors())
}

func TestValidate_EndToEnd(t *testing.T) {
	t.Parallel()

	spec := ruleset.Spec{
		ruleset.GenericScope: ruleset.NewFieldRules(ruleset.F("form-name", ruleset.MustPattern(`.+`))),
		"quote":              ruleset.NewFieldRules(ruleset.F("form-email", ruleset.MustPattern(`@`))),
	}
	p, doc, sink := setup(t, "#main-form", spec)
	doc.Fill("#main-form", url.Values{"form-name": {""}, "form-email": {"x@y"}})

	out, err := p.Validate(context.Background(), "quote")
	require.NoError(t, err)
	assert.Equal(t, formkit.StateComplete, out.State)
	assert.Equal(t, formkit.StateComplete, p.State())
	assert.False(t, out.Valid())
	assert.Equal(t, []string{"form-name"}, out.FailedFields())
	assert.NotEqual(t, uuid.Nil, out.RunID)

	errs := p.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "form-name", errs[0].Field)
	require.NotNil(t, errs[0].Hint)
	assert.Equal(t, "block", errs[0].Hint.Display())
	assert.True(t, invalid(doc, "form-name"))
	assert.False(t, invalid(doc, "form-email"))
	assert.Empty(t, sink.errs)
}

func TestValidate_Order(t *testing.T) {
	t.Parallel()

	p, _, _ := setup(t, "#main-form", contactSpec())
	out, err := p.Validate(context.Background(), "quote")
	require.NoError(t, err)
	assert.Equal(t, []string{"form-name", "form-email", "form-competitor", "website"}, out.FailedFields())
}

func TestValidate_GroupPresence(t *testing.T) {
	t.Parallel()

	p, doc, _ := setup(t, "#main-form", contactSpec())
	ctx := context.Background()

	_, err := p.Validate(ctx, "quote")
	require.NoError(t, err)
	box := dom.ByID(doc, dom.GroupBoxID("website"))
	assert.True(t, box.HasClass("invalid"))
	assert.Equal(t, "block", dom.ByID(doc, dom.HintID("website")).Display())

	doc.Fill("#main-form", url.Values{"website": {"yes"}, "form-name": {"Ada"}, "form-email": {"a@b.co"}, "form-competitor": {"Acme"}})
	out, err := p.Validate(ctx, "quote")
	require.NoError(t, err)
	assert.True(t, out.Valid())
	assert.False(t, box.HasClass("invalid"))
	assert.Equal(t, "none", dom.ByID(doc, dom.HintID("website")).Display())
}

func TestValidate_SingleForm(t *testing.T) {
	t.Parallel()

	spec := ruleset.Spec{
		ruleset.GenericScope: ruleset.NewFieldRules(ruleset.F("other-name", ruleset.MustPattern(ruleset.ExprExists))),
	}
	p, doc, _ := setup(t, "#single-form", spec)
	ctx := context.Background()

	out, err := p.Validate(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ruleset.GenericScope, out.Variant)
	assert.Equal(t, []string{"other-name"}, out.FailedFields())

	doc.Fill("#single-form", url.Values{"other-name": {"   "}})
	out, err = p.Validate(ctx, ruleset.GenericScope)
	require.NoError(t, err)
	assert.Equal(t, []string{"other-name"}, out.FailedFields())

	doc.Fill("#single-form", url.Values{"other-name": {"Bo"}})
	out, err = p.Validate(ctx, "")
	require.NoError(t, err)
	assert.True(t, out.Valid())
	assert.False(t, invalid(doc, "other-name"))
}

func TestValidate_RunIsolation(t *testing.T) {
	t.Parallel()

	p, doc, _ := setup(t, "#main-form", contactSpec())
	ctx := context.Background()
	doc.Fill("#main-form", url.Values{"form-name": {"Ada"}, "form-email": {"a@b.co"}})

	out, err := p.Validate(ctx, "enquiry")
	require.NoError(t, err)
	assert.Equal(t, []string{"form-message"}, out.FailedFields())
	assert.True(t, invalid(doc, "form-message"))

	out, err = p.Validate(ctx, "quote")
	require.NoError(t, err)
	assert.Equal(t, []string{"form-competitor", "website"}, out.FailedFields())
	assert.False(t, invalid(doc, "form-message"))
	assert.True(t, invalid(doc, "form-competitor"))
}

func TestResetValidity(t *testing.T) {
	t.Parallel()

	p, doc, _ := setup(t, "#main-form", contactSpec())
	ctx := context.Background()

	require.NoError(t, p.ResetValidity(ctx))
	assert.Equal(t, formkit.StateIdle, p.State())

	_, err := p.Validate(ctx, "quote")
	require.NoError(t, err)
	require.NotEmpty(t, p.Errors())

	before, err := doc.HTML()
	require.NoError(t, err)

	require.NoError(t, p.ResetValidity(ctx))
	once, err := doc.HTML()
	require.NoError(t, err)

	require.NoError(t, p.ResetValidity(ctx))
	twice, err := doc.HTML()
	require.NoError(t, err)

	assert.NotEqual(t, before, once)
	assert.Equal(t, once, twice)
	assert.Empty(t, p.Errors())
	assert.Equal(t, formkit.StateIdle, p.State())
	assert.False(t, invalid(doc, "form-name"))
	assert.Equal(t, "none", dom.ByID(doc, dom.HintID("form-name")).Display())
	assert.False(t, dom.ByID(doc, dom.GroupBoxID("website")).HasClass("invalid"))
}

func TestValidate_AbortKeepsEarlierFailures(t *testing.T) {
	t.Parallel()

	spec := ruleset.Spec{
		ruleset.GenericScope: ruleset.NewFieldRules(
			ruleset.F("form-name", ruleset.MustPattern(`.+`)),
			ruleset.F("form-email", ruleset.Unknown("range")),
			ruleset.F("form-competitor", ruleset.MustPattern(`.+`)),
		),
	}
	p, doc, sink := setup(t, "#main-form", spec)

	out, err := p.Validate(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, formkit.ErrUnknownRuleKind)
	assert.Equal(t, formkit.StateAborted, out.State)
	assert.Equal(t, formkit.StateAborted, p.State())
	assert.Equal(t, []string{"form-name"}, out.FailedFields())
	assert.Equal(t, []string{"form-name"}, formkit.Outcome{Failures: p.Errors()}.FailedFields())
	assert.True(t, invalid(doc, "form-name"))
	assert.False(t, invalid(doc, "form-competitor"))

	require.Len(t, sink.errs, 1)
	perr := sink.errs[0]
	assert.Equal(t, formkit.ErrorTypeValidation, perr.Type())
	assert.Equal(t, formkit.GenericErrorMessage, perr.Message())
	assert.Contains(t, perr.TechnicalMessage(), "form-email")

	returned, ok := formkit.AsProcessingError(err)
	require.True(t, ok)
	assert.Equal(t, perr, returned)

	// the next run starts from a clean slate
	_, err = p.Validate(context.Background(), "")
	require.Error(t, err)
	assert.Len(t, p.Errors(), 1)
}

func TestValidate_ProcessingErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selector string
		spec     ruleset.Spec
		variant  string
		errType  string
		sentinel error
	}{
		{
			name:     "unknown variant",
			selector: "#main-form",
			spec:     contactSpec(),
			variant:  "support",
			errType:  formkit.ErrorTypeVariant,
			sentinel: formkit.ErrUnknownVariant,
		},
		{
			name:     "generic scope is not a variant of a multi form",
			selector: "#main-form",
			spec:     contactSpec(),
			variant:  "",
			errType:  formkit.ErrorTypeVariant,
			sentinel: formkit.ErrUnknownVariant,
		},
		{
			name:     "missing input",
			selector: "#single-form",
			spec: ruleset.Spec{ruleset.GenericScope: ruleset.NewFieldRules(
				ruleset.F("nickname", ruleset.MustPattern(`.+`)),
			)},
			errType:  formkit.ErrorTypeConfiguration,
			sentinel: formkit.ErrMissingElement,
		},
		{
			name:     "missing group container",
			selector: "#single-form",
			spec: ruleset.Spec{ruleset.GenericScope: ruleset.NewFieldRules(
				ruleset.F("contact-type", ruleset.Group()),
			)},
			errType:  formkit.ErrorTypeConfiguration,
			sentinel: formkit.ErrMissingElement,
		},
		{
			name:     "pattern without expression",
			selector: "#single-form",
			spec: ruleset.Spec{ruleset.GenericScope: ruleset.NewFieldRules(
				ruleset.F("other-name", ruleset.PatternRule{}),
			)},
			errType:  formkit.ErrorTypeConfiguration,
			sentinel: formkit.ErrInvalidRule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, _, sink := setup(t, tt.selector, tt.spec)

			out, err := p.Validate(context.Background(), tt.variant)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, formkit.StateAborted, out.State)
			assert.Empty(t, out.Failures)
			require.Len(t, sink.errs, 1)
			assert.Equal(t, tt.errType, sink.errs[0].Type())
		})
	}
}

func TestValidate_StaleErrorsClearedOnAbort(t *testing.T) {
	t.Parallel()

	p, doc, _ := setup(t, "#main-form", contactSpec())
	ctx := context.Background()

	_, err := p.Validate(ctx, "quote")
	require.NoError(t, err)
	require.True(t, invalid(doc, "form-name"))

	_, err = p.Validate(ctx, "support")
	require.ErrorIs(t, err, formkit.ErrUnknownVariant)
	assert.Empty(t, p.Errors())
	assert.False(t, invalid(doc, "form-name"))
}

func TestValidate_OverlappingCallRejected(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(contactPage)
	require.NoError(t, err)

	busy := &reentrantElement{Element: dom.FirstByName(doc, "form-name")}
	wrapped := &overrideDoc{Document: doc, name: "form-name", el: busy}
	sink := &sinkRecorder{}

	p, err := formkit.New(wrapped, "#main-form", contactSpec(),
		formkit.WithErrorSink(sink), formkit.WithLogger(logger.Discard()))
	require.NoError(t, err)

	var nested, nestedReset error
	var nestedOutcome formkit.Outcome
	busy.onValue = func() {
		nestedOutcome, nested = p.Validate(context.Background(), "quote")
		nestedReset = p.ResetValidity(context.Background())
	}

	out, err := p.Validate(context.Background(), "quote")
	require.NoError(t, err)
	assert.Equal(t, formkit.StateComplete, out.State)

	assert.ErrorIs(t, nested, formkit.ErrRunInProgress)
	assert.Equal(t, formkit.State(""), nestedOutcome.State)
	assert.ErrorIs(t, nestedReset, formkit.ErrRunInProgress)

	perr, ok := formkit.AsProcessingError(nested)
	require.True(t, ok)
	assert.Equal(t, formkit.ErrorTypeConcurrency, perr.Type())
	assert.Len(t, sink.errs, 2)

	// the outer run was not disturbed
	assert.Equal(t, []string{"form-name", "form-email", "form-competitor", "website"}, out.FailedFields())
}

func TestValidate_ConcurrentCallsDoNotInterleave(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(contactPage)
	require.NoError(t, err)

	var rejected atomic.Int64
	sink := formkit.ErrorSinkFunc(func(_ context.Context, perr formkit.ProcessingError) {
		if perr.Type() == formkit.ErrorTypeConcurrency {
			rejected.Add(1)
		}
	})
	p, err := formkit.New(doc, "#main-form", contactSpec(),
		formkit.WithErrorSink(sink), formkit.WithLogger(logger.Discard()))
	require.NoError(t, err)

	const (
		workers = 8
		runs    = 200
	)
	want := []string{"form-name", "form-email", "form-competitor", "website"}

	var (
		wg       sync.WaitGroup
		busy     atomic.Int64
		mu       sync.Mutex
		mismatch []formkit.Outcome
		unknown  []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range runs {
				out, err := p.Validate(context.Background(), "quote")
				switch {
				case err == nil:
					if out.State != formkit.StateComplete || !slices.Equal(out.FailedFields(), want) {
						mu.Lock()
						mismatch = append(mismatch, out)
						mu.Unlock()
					}
				case errors.Is(err, formkit.ErrRunInProgress):
					busy.Add(1)
				default:
					mu.Lock()
					unknown = append(unknown, err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, unknown)
	assert.Empty(t, mismatch)
	assert.Equal(t, busy.Load(), rejected.Load())
	assert.Equal(t, formkit.StateComplete, p.State())
	assert.Equal(t, want, formkit.Outcome{Failures: p.Errors()}.FailedFields())
	assert.True(t, invalid(doc, "form-name"))
	assert.Equal(t, "block", dom.ByID(doc, dom.HintID("form-name")).Display())
}

func TestOptions(t *testing.T) {
	t.Parallel()

	p, doc, _ := setup(t, "#main-form", contactSpec(),
		formkit.WithInvalidClass("is-invalid"),
		formkit.WithHintDisplay("flex"),
	)
	_, err := p.Validate(context.Background(), "enquiry")
	require.NoError(t, err)
	assert.True(t, dom.FirstByName(doc, "form-name").HasClass("is-invalid"))
	assert.False(t, dom.FirstByName(doc, "form-name").HasClass("invalid"))
	assert.Equal(t, "flex", dom.ByID(doc, dom.HintID("form-name")).Display())

	assert.Panics(t, func() { formkit.WithInvalidClass("") })
	assert.Panics(t, func() { formkit.WithHintDisplay("none") })
	assert.Panics(t, func() { formkit.WithEventHandler("", formkit.ValidateVariant("")) })
	assert.Panics(t, func() { formkit.WithEventHandler("submit", nil) })
}

// reentrantElement calls onValue the first time its value is read, which
// happens while a run is iterating.
type reentrantElement struct {
	dom.Element
	onValue func()
	fired   bool
}

func (e *reentrantElement) Value() string {
	if !e.fired && e.onValue != nil {
		e.fired = true
		e.onValue()
	}
	return e.Element.Value()
}

type overrideDoc struct {
	dom.Document
	name string
	el   dom.Element
}

func (d *overrideDoc) Query(selector string) dom.Element {
	if selector == dom.NameSelector(d.name) {
		return d.el
	}
	return d.Document.Query(selector)
}

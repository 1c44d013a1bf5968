package formkit

import (
	"context"
	"net/url"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// EventSubmit is the event a form binding dispatches on submission.
const EventSubmit = "submit"

// Event is something that happened to the bound form.
type Event struct {
	Type string
	// Values holds submitted form values, when there are any.
	Values url.Values
}

// EventHandler reacts to an event. The processor is passed explicitly so a
// handler can validate, reset or inspect the root element.
type EventHandler func(ctx context.Context, p *Processor, ev Event) error

// Dispatch runs the handler bound to ev.Type. Events without a handler are
// ignored.
func (p *Processor) Dispatch(ctx context.Context, ev Event) error {
	h, ok := p.handlers[ev.Type]
	if !ok {
		p.log.DebugContext(ctx, "event ignored", logger.Form(p.selector), logger.Event(ev.Type))
		return nil
	}
	return h(ctx, p, ev)
}

// ValidateVariant returns a handler validating a fixed variant. An empty
// name validates the single-form rules.
func ValidateVariant(variant string) EventHandler {
	return func(ctx context.Context, p *Processor, _ Event) error {
		_, err := p.Validate(ctx, variant)
		return err
	}
}

// ValidateSelected returns a handler that validates the variant named by the
// checked element of the field radio group, the way a multi form lets the
// user pick which sub-form they are filling in. When nothing in the document
// is checked, the submitted value of field in ev.Values is used.
func ValidateSelected(field string) EventHandler {
	return func(ctx context.Context, p *Processor, ev Event) error {
		variant, ok := dom.CheckedValue(p.doc, field)
		if !ok {
			variant = ev.Values.Get(field)
			ok = variant != ""
		}
		if !ok {
			perr := newProcessingError(ErrorTypeVariant, ErrNoVariantSelected,
				"No variant selected in the group: %s", field)
			p.handleError(ctx, perr)
			return perr
		}
		_, err := p.Validate(ctx, variant)
		return err
	}
}

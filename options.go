package formkit

import (
	"log/slog"
)

// Default visual contract.
const (
	DefaultInvalidClass = "invalid"
	DefaultHintDisplay  = "block"
	hiddenDisplay       = "none"
)

// Option configures a Processor.
type Option func(*Processor)

// WithEventHandler binds h to events of the given type. Empty names and nil
// handlers panic.
func WithEventHandler(event string, h EventHandler) Option {
	if event == "" {
		panic("WithEventHandler: event cannot be empty")
	}
	if h == nil {
		panic("WithEventHandler: nil handler")
	}
	return func(p *Processor) { p.handlers[event] = h }
}

// WithEventHandlers binds every handler in the map. Nil handlers are skipped.
func WithEventHandlers(handlers map[string]EventHandler) Option {
	return func(p *Processor) {
		for event, h := range handlers {
			if event != "" && h != nil {
				p.handlers[event] = h
			}
		}
	}
}

// WithErrorSink sets where processing errors go. Defaults to LogSink over
// the processor logger.
func WithErrorSink(s ErrorSink) Option {
	return func(p *Processor) { p.sink = s }
}

// WithLogger sets the logger used for run diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// WithInvalidClass sets the class added to invalid elements.
func WithInvalidClass(class string) Option {
	if class == "" {
		panic("WithInvalidClass: class cannot be empty")
	}
	return func(p *Processor) { p.invalidClass = class }
}

// WithHintDisplay sets the display value that makes a hint visible.
func WithHintDisplay(display string) Option {
	if display == "" || display == hiddenDisplay {
		panic("WithHintDisplay: display must be a visible value")
	}
	return func(p *Processor) { p.hintDisplay = display }
}

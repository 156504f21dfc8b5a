// Package uictx holds the explicit UI context passed into the list engine:
// DPI scale, the render factory used for text measurement, the logger and
// the strict flag that turns contract violations into panics.
//
// There is no process-wide instance; the application root owns a Context and
// hands it to every layout, store and controller it creates.
package uictx

import (
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/rshade/tilegrid/internal/logging"
)

// DefaultDPIScale is the unscaled DPI percentage.
const DefaultDPIScale = 100

// RenderFactory is the slice of the rendering backend the engine consumes.
type RenderFactory interface {
	// TextWidth returns the rendered width of s in layout units.
	TextWidth(s string) int
}

// RuneWidthFactory measures text as one unit per rune.
type RuneWidthFactory struct{}

// TextWidth implements RenderFactory.
func (RuneWidthFactory) TextWidth(s string) int { return utf8.RuneCountInString(s) }

// Context is the explicit replacement for global UI state.
type Context struct {
	dpiScale int
	factory  RenderFactory
	logger   zerolog.Logger
	strict   bool
}

// Option configures a Context.
type Option func(*Context)

// WithDPIScale sets the DPI scale as a percentage (100 = unscaled).
func WithDPIScale(percent int) Option {
	return func(c *Context) {
		if percent > 0 {
			c.dpiScale = percent
		}
	}
}

// WithRenderFactory sets the render factory.
func WithRenderFactory(f RenderFactory) Option {
	return func(c *Context) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithStrict makes contract violations panic instead of being logged.
func WithStrict(strict bool) Option {
	return func(c *Context) { c.strict = strict }
}

// New creates a Context. Without options it is unscaled, measures text by
// rune count and discards logs.
func New(opts ...Option) *Context {
	c := &Context{
		dpiScale: DefaultDPIScale,
		factory:  RuneWidthFactory{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Default returns a fresh Context with default settings.
func Default() *Context { return New() }

// DPIScale returns the scale percentage.
func (c *Context) DPIScale() int { return c.dpiScale }

// Factory returns the render factory.
func (c *Context) Factory() RenderFactory { return c.factory }

// Strict reports whether contract violations panic.
func (c *Context) Strict() bool { return c.strict }

// Logger returns a logger tagged with the given component.
func (c *Context) Logger(component string) zerolog.Logger {
	return logging.ComponentLogger(c.logger, component)
}

// Scale applies the DPI scale to v.
func (c *Context) Scale(v int32) int32 {
	if c.dpiScale == DefaultDPIScale {
		return v
	}
	return int32(int64(v) * int64(c.dpiScale) / DefaultDPIScale)
}

// Assert reports a caller contract violation. In strict mode it panics;
// otherwise it logs at error level and returns so the caller can degrade.
// It returns cond to allow `if !ctx.Assert(...) { fallback }`.
func (c *Context) Assert(cond bool, component, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if c.strict {
		panic(component + ": " + msg)
	}
	logger := c.Logger(component)
	logger.Error().Str("violation", msg).Msg("contract violation")
	return false
}

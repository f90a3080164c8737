// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for diagnostic rendering.
// This file defines:
//   - RenderOption / renderOptions (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherRenderOptions helper that applies them in order.
//
// Only presentation is configurable here; Eps stays a constant.
package matrix

import "golang.org/x/text/language"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultPrecision selects the shortest representation that round-trips a float32 (%g).
	DefaultPrecision = -1

	// DefaultColumnSeparator separates values inside a row.
	DefaultColumnSeparator = ", "

	// DefaultHeader controls the leading "rows x cols" line.
	DefaultHeader = false

	// MaxPrecision caps WithPrecision; float32 carries ~9 significant digits.
	MaxPrecision = 9
)

// DefaultLocale formats numbers without grouping and with '.' as decimal mark.
var DefaultLocale = language.Und

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPrecisionInvalid = "matrix: WithPrecision: precision must be in [-1, 9]"
	panicSeparatorEmpty   = "matrix: WithColumnSeparator: separator must not be empty"
)

// ---------- Public option type (functional) ----------

// RenderOption mutates internal render options. Safe to apply repeatedly.
type RenderOption func(*renderOptions)

// renderOptions stores the effective configuration after applying setters.
type renderOptions struct {
	precision int          // -1 (shortest) or number of fractional digits
	separator string       // between values of a row
	header    bool         // print "rows x cols" first
	locale    language.Tag // number formatting locale
}

// WithPrecision fixes the number of fractional digits (-1 restores %g).
// Panics when p is outside [-1, MaxPrecision].
func WithPrecision(p int) RenderOption {
	if p < -1 || p > MaxPrecision {
		panic(panicPrecisionInvalid)
	}

	return func(o *renderOptions) { o.precision = p }
}

// WithColumnSeparator replaces the separator between values of a row.
// Panics on an empty separator.
func WithColumnSeparator(sep string) RenderOption {
	if sep == "" {
		panic(panicSeparatorEmpty)
	}

	return func(o *renderOptions) { o.separator = sep }
}

// WithHeader prefixes the rendering with a "rows x cols" line.
func WithHeader() RenderOption {
	return func(o *renderOptions) { o.header = true }
}

// WithLocale formats numbers using the conventions of tag (decimal mark,
// digit grouping), e.g. language.German renders 1.5 as "1,5".
func WithLocale(tag language.Tag) RenderOption {
	return func(o *renderOptions) { o.locale = tag }
}

// defaultRenderOptions returns the documented defaults.
func defaultRenderOptions() renderOptions {
	return renderOptions{
		precision: DefaultPrecision,
		separator: DefaultColumnSeparator,
		header:    DefaultHeader,
		locale:    DefaultLocale,
	}
}

// gatherRenderOptions applies user options over defaults, in order; later wins.
func gatherRenderOptions(user ...RenderOption) renderOptions {
	o := defaultRenderOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

package kbest

import (
	"math/rand"
	"time"
)

type options struct {
	tolerance float32
	source    rand.Source
}

// Option configures ResultSet construction.
type Option func(*options)

// WithTolerance configures the relative tolerance under which two distances
// count as tied. Values <= 0 are ignored.
//
// The right value depends on how distances are computed: it should be large
// enough to absorb the float32 rounding spread between different summation
// orders of the same geometric distance, and small enough not to merge
// genuinely distinct distances. See DefaultTolerance.
func WithTolerance(tolerance float32) Option {
	return func(o *options) {
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}

// WithRandomSource configures the entropy source used for tie-breaking.
//
// The source becomes private to the constructed instance and must not be
// shared with other instances if independent tie-breaking across queries is
// required. If nil is passed, the default time-derived source is used.
func WithRandomSource(source rand.Source) Option {
	return func(o *options) {
		if source != nil {
			o.source = source
		}
	}
}

// WithSeed configures a deterministic seed for tie-breaking.
// Convenience wrapper for WithRandomSource(rand.NewSource(seed)).
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.source = rand.NewSource(seed)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		tolerance: DefaultTolerance,
		source:    rand.NewSource(time.Now().UnixNano()),
	}

	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

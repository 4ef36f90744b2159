package kbest

import "github.com/chewxy/math32"

// DefaultTolerance is the relative tolerance under which two distances are
// considered equal for tie purposes. Geometrically identical distances can
// differ by accumulated float32 rounding when computed via different
// summation orders; the default absorbs roughly a hundred ULPs at any
// magnitude. Tune with WithTolerance.
const DefaultTolerance float32 = 1e-5

// nearlyEqual reports whether a and b are equal within the configured
// relative tolerance. The sentinel NullDistance is equal only to itself.
func (s *ResultSet) nearlyEqual(a, b float32) bool {
	if a == b {
		return true
	}
	if math32.IsInf(a, 0) || math32.IsInf(b, 0) {
		return false
	}
	return math32.Abs(a-b) <= s.tol*math32.Max(math32.Abs(a), math32.Abs(b))
}

// strictLess reports whether a sorts strictly before b, i.e. a < b by more
// than the tolerance. Ordered insertion and tie-boundary searches both use
// this comparator so that nearly-equal distances are never ordered.
func (s *ResultSet) strictLess(a, b float32) bool {
	return a < b && !s.nearlyEqual(a, b)
}

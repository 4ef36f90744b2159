package kbest

import (
	"math/rand"
	"sort"

	"github.com/chewxy/math32"
)

// NullID is the sentinel payload meaning "no value here". It is guaranteed
// to be an invalid candidate index (negative).
const NullID int32 = -1

// NullDistance is the sentinel distance meaning "empty slot" or "no bound".
// It compares strictly greater than any finite distance, so it is replaced
// as real distances are inserted.
var NullDistance = math32.Inf(1)

// Item is a single (payload, distance) candidate.
// Value-based (no pointers) for cache locality and zero allocations.
type Item struct {
	ID       int32   // ID is an opaque candidate index (e.g. into a point array).
	Distance float32 // Distance is the candidate's distance to the query point.
}

// ResultSet maintains the k smallest distances (and their IDs) seen so far,
// with unbiased randomized resolution of ties at the admission boundary.
//
// It is the result structure a spatial tree search feeds while it walks the
// index: the traversal calls Insert for every candidate it visits, reads
// MaxDistance as its pruning radius between subtree visits, and performs a
// final read-out pass once insertion has finished.
//
// Candidates whose distance is nearly equal to the current k-th smallest do
// not immediately occupy a slot; they are held in a tie bucket and a uniform
// random representative is drawn only when a contested position is read.
// Without this, whichever tied candidate the traversal discovers first would
// deterministically win, biasing any statistic computed from k-NN results.
//
// Internally the set is a sorted array with one extra scratch slot plus the
// tie bucket. Items are kept in non-decreasing distance order via ordered
// insertion; the tie boundary marks the first position contested by the
// bucket.
//
// A ResultSet is NOT thread-safe. It is intended to be owned by a single
// goroutine for the duration of one query. Parallel searches over disjoint
// subtrees should give each branch its own ResultSet and Merge afterwards.
type ResultSet struct {
	k      int
	count  int
	items  []Item // k+1 slots, sorted ascending; items[k] is scratch
	tieIdx int    // first position contested by the tie bucket
	tied   []Item // candidates tied for the last admitted slot(s)
	rng    *rand.Rand
	tol    float32
}

// New creates a ResultSet that retains the k smallest candidates.
//
// k must be >= 1; this is a caller contract and is not checked. The random
// source used for tie-breaking is private to the instance and can be
// injected with WithRandomSource or WithSeed for deterministic tests.
func New(k int, optFns ...Option) *ResultSet {
	o := applyOptions(optFns)

	s := &ResultSet{
		k:     k,
		items: make([]Item, k+1),
		rng:   rand.New(o.source),
		tol:   o.tolerance,
	}
	s.Reset()

	return s
}

// K returns the capacity of the result set.
func (s *ResultSet) K() int { return s.k }

// Len returns the number of candidates currently admitted (0..k).
func (s *ResultSet) Len() int { return s.count }

// Insert offers a candidate to the result set.
//
// Nearly-equal to the current worst admitted distance: the candidate joins
// the tie bucket as a contender for the last slot(s). Strictly worse: it is
// discarded. Strictly better: it is placed at its sorted position and the
// former worst drops out, with the tie boundary and bucket updated to track
// the new worst admitted distance.
func (s *ResultSet) Insert(distance float32, id int32) {
	it := Item{ID: id, Distance: distance}

	switch worst := s.items[s.k-1].Distance; {
	case s.nearlyEqual(worst, distance):
		// A new contender for the last admitted slot(s).
		s.tied = append(s.tied, it)

	case distance > worst:
		// Worse than everything admitted and not tied.
		return

	default:
		if s.k == 1 || s.strictLess(s.items[s.k-2].Distance, distance) {
			// The candidate's sorted position is exactly the last slot:
			// the entire former tie group is displaced at once and the
			// candidate starts its own tie group as the new worst.
			s.items[s.k-1] = it
			s.tied = append(s.tied[:0], it)
			break
		}

		pos := sort.Search(s.tieIdx, func(i int) bool {
			return !s.strictLess(s.items[i].Distance, distance)
		})
		copy(s.items[pos+1:s.k+1], s.items[pos:s.k]) // former worst lands in the scratch slot
		s.items[pos] = it

		if s.tieIdx == s.k-1 {
			// The tie region was exactly the last slot; the insertion
			// pushed a whole group of tied former-worst entries back by
			// one. Relocate the boundary at the new worst distance and
			// rebuild the bucket from the array. Previous bucket contents
			// were tied to the superseded worst and are dropped.
			newWorst := s.items[s.k-1].Distance
			off := sort.Search(s.k-1-pos, func(i int) bool {
				return !s.strictLess(s.items[pos+i].Distance, newWorst)
			})
			s.tieIdx = pos + off
			s.tied = append(s.tied[:0], s.items[s.tieIdx:s.k]...)
		} else {
			// The insertion landed strictly before the tie region; every
			// tied position shifted one step back, composition unchanged.
			s.tieIdx++
		}
	}

	if s.count < s.k {
		s.count++
	}
}

// MinDistance returns the smallest admitted distance, or NullDistance if the
// set is empty.
func (s *ResultSet) MinDistance() float32 {
	if s.count == 0 {
		return NullDistance
	}
	return s.items[0].Distance
}

// MaxDistance returns the current k-th smallest distance once the set is
// full, or NullDistance while fewer than k candidates have been admitted.
//
// This is the pruning bound: a tree search can skip any subtree whose lower
// distance bound is not below this value.
func (s *ResultSet) MaxDistance() float32 {
	if s.count != s.k {
		return NullDistance
	}
	return s.items[s.k-1].Distance
}

// DistanceAt returns the i-th smallest distance (0-indexed), or NullDistance
// if i is out of range. It is read-only and idempotent.
func (s *ResultSet) DistanceAt(i int) float32 {
	if i < 0 || i >= s.count {
		return NullDistance
	}
	return s.items[i].Distance
}

// IDAt returns the ID at sorted position i, or NullID if i is out of range.
//
// Below the tie boundary the position is uncontested and the read is
// idempotent. At or above it, the read draws a uniformly random entry from
// the tie bucket and REMOVES it: each contested index must be read exactly
// once during the final read-out pass (in any order) to obtain an unbiased
// without-replacement sample of the tied candidates. Reading a contested
// index more than once is a caller protocol violation and yields entries
// the caller has already seen, or NullID once the bucket is exhausted.
// Results does this pass correctly on the caller's behalf.
func (s *ResultSet) IDAt(i int) int32 {
	if i < 0 || i >= s.count {
		return NullID
	}
	if i < s.tieIdx {
		return s.items[i].ID
	}

	switch n := len(s.tied); n {
	case 0:
		return NullID
	case 1:
		return s.tied[0].ID
	default:
		j := s.rng.Intn(n)
		id := s.tied[j].ID
		s.tied[j] = s.tied[n-1]
		s.tied = s.tied[:n-1]
		return id
	}
}

// Results performs the final read-out pass, reading every position exactly
// once, and returns the candidates in non-decreasing distance order. Call it
// once, after insertion has finished.
func (s *ResultSet) Results() []Item {
	out := make([]Item, s.count)
	for i := range out {
		out[i] = Item{ID: s.IDAt(i), Distance: s.items[i].Distance}
	}
	return out
}

// Merge re-inserts every candidate still contending in other into s.
//
// It supports parallel search over disjoint subtrees: give each branch its
// own ResultSet and merge the branch sets into one before read-out. other is
// read but not modified; it must not be mid-read-out (see IDAt).
func (s *ResultSet) Merge(other *ResultSet) {
	if other == nil || other == s {
		return
	}
	// Every logical candidate of a ResultSet appears exactly once in its
	// uncontested prefix or its tie bucket.
	for i := 0; i < other.tieIdx && i < other.count; i++ {
		s.Insert(other.items[i].Distance, other.items[i].ID)
	}
	for _, it := range other.tied {
		s.Insert(it.Distance, it.ID)
	}
}

// Reset returns the set to its freshly constructed state, retaining the
// private random source and all allocations, so one instance can serve many
// sequential queries.
func (s *ResultSet) Reset() {
	for i := range s.items {
		s.items[i] = Item{ID: NullID, Distance: NullDistance}
	}
	s.count = 0
	s.tieIdx = 0
	s.tied = s.tied[:0]
}

// Package kbest provides the bounded "k smallest so far" result set used by
// nearest-neighbor tree search, with unbiased randomized tie-breaking.
//
// A spatial index (kd-tree, ball tree, cover tree) discovers candidate
// points in an order unrelated to their distance from the query. ResultSet
// continuously tracks the k closest candidates seen so far, exposes the
// current k-th best distance as a pruning bound, and resolves ties among
// candidates equidistant (within a float tolerance) from the query by
// uniform random choice. A deterministic tie-break would reproducibly favor
// whichever candidate the traversal happens to visit first, biasing any
// statistic computed downstream from k-NN results.
//
// # Quick Start
//
//	rs := kbest.New(10)
//	for _, c := range candidates {
//	    rs.Insert(c.Distance, c.ID)   // any order
//	    _ = rs.MaxDistance()          // pruning bound for the traversal
//	}
//	for _, item := range rs.Results() { // final read-out, once
//	    fmt.Println(item.ID, item.Distance)
//	}
//
// # Tie Semantics
//
// Candidates tied for the last admitted slot(s) are held in a bucket rather
// than in slots. Reading a contested position draws a uniformly random
// bucket entry without replacement, so when p positions are tied and more
// than p candidates contend, the reported subset is a uniform random sample
// of the contenders. IDAt is therefore destructive in the tie region; use
// Results for the read-out pass unless you need index-by-index access.
//
// # Searcher
//
// Searcher wraps a ResultSet with per-query candidate accounting, structured
// logging and a MetricsCollector hook:
//
//	sr := kbest.NewSearcher(10, kbest.WithMetricsCollector(metrics))
//	sr.Offer(dist, id)
//	results := sr.Finish(ctx)
//
// # Concurrency
//
// A ResultSet (and Searcher) is owned by one query execution and is not
// thread-safe. Parallel search over disjoint subtrees should use one
// instance per branch and Merge them before read-out.
package kbest

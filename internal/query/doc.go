// Package query computes the visible, ordered subset of a recipe collection.
//
// Run is a pure function of its inputs: it performs no I/O, never mutates
// the collection, and returns the same result for the same inputs. Callers
// that recompute on every keystroke debounce at their own boundary (see
// package debounce); the engine itself is always synchronous and total.
//
// Filtering combines three predicates with AND:
//   - Term: case-insensitive substring match on name, any ingredient, or description
//   - FavoritesOnly: only favorites pass
//   - RequiredTags: the recipe must carry every required tag
//
// Sorting compares in natural ascending order (name by locale collation,
// date by DateAdded with missing dates as the Unix epoch, rating with
// missing ratings as 0); descending negates the comparator. The sort is
// stable, so equal keys keep their input order in both directions.
package query

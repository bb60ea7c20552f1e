// Package recipe defines the Recipe entity and its creation contract.
//
// This package contains the entity, draft validation, tag rules and the
// export projection. It imports nothing internal so every other package can
// depend on it.
//
// Key constraints:
//   - IDs are assigned once by an IDGenerator and never reused
//   - DateAdded is set by New and never mutated afterwards
//   - Tags are unique (exact, case-sensitive match) and capped at MaxTags
//   - Rating is 0 whenever TotalRatings is 0
//   - Optional fields are pointers with documented defaults, never zero-value guesses
package recipe

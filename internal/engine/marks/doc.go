// Package marks provides a persistent, edit-resilient store of marked
// matches for a single buffer.
//
// A mark is an ownership-independent shadow of a match: it outlives the
// matcher's transient computation and keeps its span correct as the
// buffer changes. The store implements buffer.EditObserver; every edit
// notification re-derives each tracked span from the edit's position
// delta, with left-edge gravity:
//
//   - insertions before a mark shift it forward
//   - deletions spanning a mark remove it
//   - edits partially overlapping a mark clamp it to the surviving text
//   - edits strictly after a mark leave it untouched
//
// Marks are keyed by stable IDs in an arena; positions are indexed by a
// sorted slice so iteration is always in document order.
package marks

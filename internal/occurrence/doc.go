// Package occurrence composes the engine's pieces into the per-buffer
// facade external callers use.
//
// An Occurrence owns a buffer's accumulated pattern set, its
// edit-resilient mark store, a generation-cached match slice, and the
// cursor cache that makes repeated navigation cheap. Its lifecycle is
// a small state machine:
//
//	Empty -> HasMatches -> Active -> Disposed
//
// Disposed is terminal: every further call returns ErrDisposed and a
// fresh Occurrence must be created for the buffer.
//
// The Registry is the process-wide buffer-to-occurrence cache with
// explicit init (Attach) and teardown (Del) entry points. Lifecycle
// transitions publish notifications on the registry's event bus under
// the occurrence.* topics. Status queries against missing occurrences
// return ok=false rather than an error; that is an expected steady
// state.
package occurrence

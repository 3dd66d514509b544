// Package state saves and restores the values a bean holds at one origin.
//
// A Snapshot is the textual form of an origin: every value is rendered with
// its key's converter so snapshots survive process restarts and can be
// applied to any bean of the same type. Store implementations only load and
// save one snapshot per Ref; the Resolver captures, restores and mutates
// snapshots on top of a Store and enforces optimistic concurrency through
// Meta.ETag.
//
// Data flow:
//
//	bean -> Capture -> Store.Save ... Store.Load -> Restore -> bean
//
// Deterministic keys:
//
//	Ref.Identifier() renders "<origin>/<bean type>/<name>", e.g.
//	"user/rect/3f0c...". Adapters backed by external storage should use it
//	as their primary key.
package state

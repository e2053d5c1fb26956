// Package filter compiles boolean filter expressions over records.
//
// A filter combines key/operator/value predicates with the boolexpr
// operators, for example:
//
//	type == nfs & !(size < 100) | label contains tmp
//
// Compilation is two-phase, the flow the tree is designed for: the
// expression structure is first built with raw string atoms, then every
// atom is parsed once into a typed Predicate with betree.TryMapAtoms. The
// compiled filter is immutable and can be matched against any number of
// records, concurrently.
//
// Engine wraps a compiled filter with optional structured logging, OTel
// metrics and tracing.
package filter

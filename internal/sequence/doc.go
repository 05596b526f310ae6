// Package sequence implements the incremental sequence cache and the query
// resolver built on top of it.
//
// The Cache keeps an append-only serialized rendering of the sequence,
// "[1, 1, 2, 3, " and so on, together with the byte offset just past each
// term's digits. Bytes are only ever written past the published tail, so any
// prefix that has been published may be read without coordinating with a
// concurrent extension. Extensions are serialized and each one is performed
// exactly once: a request that finds its prefix already materialized never
// enters the extension path.
//
// The Resolver answers "first N terms" queries. Requests within the cache
// ceiling are served from a published prefix; requests beyond it splice the
// full cached prefix with a live tail computed from the cache's committed
// cursor. The live tail is never written back.
package sequence

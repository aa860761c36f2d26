// Package tokenbucket implements an in-process, per-key rate limiter using the
// token bucket algorithm. Every key owns a bucket that holds up to Capacity
// tokens and refills continuously at Capacity/Window tokens per second; each
// admitted operation consumes one token.
//
// Buckets are created lazily at full capacity the first time a key is seen and
// live until Reset, ResetAll or an idle Sweep removes them. Elapsed time is
// read from a monotonic Clock, so wall-clock adjustments never produce negative
// refills.
//
// A Limiter is safe for concurrent use. Find the demo driver under cmd/.
package tokenbucket

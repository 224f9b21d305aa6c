// Package fetch downloads chord chart pages over HTTP.
//
// A [Client] sends a browser-like User-Agent, retries transient failures
// through [httputil.Retry] and stores successful bodies in a [cache.Cache]
// keyed by URL. Status codes are mapped onto error codes from pkg/errors:
// 404 becomes NOT_FOUND, 429 a RATE_LIMITED error, and 5xx a
// retryable NETWORK_ERROR.
//
// Clients built with [WithPublicOnly] refuse destinations that are not
// publicly routable and report them as INVALID_INPUT.
package fetch

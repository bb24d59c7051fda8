// Package server exposes the layout engine over HTTP.
//
// # Endpoints
//
//	POST /v1/layout   map document in, geometry.Scene JSON out
//	POST /v1/render   map document in, SVG (or PDF/PNG) out
//	GET  /healthz     liveness and build version
//	GET  /metrics     Prometheus exposition, when a handler is configured
//
// The request body is a map document in JSON, YAML or TOML. The format comes
// from the format query parameter, else from the Content-Type header, else
// JSON is assumed. Query parameters override the server configuration per
// request:
//
//	outline=true      outline display mode
//	zoom=1.5          zoom factor
//	compact=true      silhouette compaction everywhere
//	silhouettes=true  include subtree silhouettes in the output
//
// Errors are answered with a JSON body of the form
//
//	{"error": {"code": "INVALID_MAP", "message": "..."}}
//
// and a status derived from the error code.
//
// Every request is tagged with an X-Request-ID (the client's, or a fresh
// UUID), logged, and reported to the registered observability.HTTPHooks
// under its route pattern.
package server

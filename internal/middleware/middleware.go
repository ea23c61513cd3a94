// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as CORS and preflight requests, request logging, rate
// limiting, tracing and panic recovery, plus the error funnel
// that writes every failed request's JSON body.
package middleware

// Package http implements the HTTP transport layer of the user accounts
// service.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Bearer-token authorization, request tracing, access logging, metrics
// and response compression are handled in this package before requests are
// delegated to the service layer.
package http

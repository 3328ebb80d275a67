// Package api serves the JSON interface to the description service.
//
// Handlers decode requests, call the service, and map errors to status codes
// and safe messages (see MapErrorToStatusCode and GetSafeErrorMessage). Raw
// errors are only logged, after redaction, together with the request's trace ID.
package api

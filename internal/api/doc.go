// Package api provides an HTTP client for the six-cities REST API and the
// wire adapter that turns its records into domain values.
//
// # Overview
//
// The package is split into three parts:
//
//   - client.go: HTTP client, request construction and error mapping
//   - wire.go: structs mirroring the server's JSON shapes
//   - adapt.go: pure conversion from wire records into internal/domain types
//
// # Endpoints
//
//	GET  /offers                 list all offers
//	GET  /offers/{id}            single offer
//	GET  /offers/{id}/nearby     nearby offers
//	GET  /comments/{id}          reviews for an offer
//	POST /comments/{id}          submit {comment, rating}
//	GET  /login                  verify the session
//	POST /login                  authenticate {email, password}
//	GET  /favorite               favorited offers
//	POST /favorite/{id}/{0|1}    toggle favorite status
//
// Paths are joined onto the configured base URL, so a base of
// "https://host/six-cities" yields "https://host/six-cities/offers".
//
// # Authentication
//
// When a TokenSource is configured, its token is sent in the X-Token header.
// A 401 response on any request calls TokenSource.Drop before the error is
// returned, so later session checks observe an anonymous user.
//
// # Error Handling
//
//   - Network errors: "execute request: ..."
//   - HTTP errors: *StatusError, e.g. "api GET /offers/7 returned status 404"
//   - Deserialization errors: "decode response: ..."
//   - Adapter errors: ErrMalformedRecord when an id or title is missing
//
// Use IsNotFound and IsUnauthorized instead of matching strings.
//
// # Adapter Defaults
//
// Optional wire fields never cause an adapter failure. See ServerOffer for the
// default applied to each field.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package api

// Package stubapi serves an in-memory six-cities API for local development
// and end-to-end tests.
//
// It mirrors the routes the client calls: offers, nearby offers, comments,
// login and favorites. Sessions are HS256 JWTs carried in the X-Token header;
// favorites and user profiles are kept per email and vanish on restart.
// Configuration comes from ROOST_STUB_* environment variables, optionally
// loaded from a .env file.
package stubapi

// Package ops runs the asynchronous operations that sit between the
// six-cities API and the state store.
//
// Each operation calls the API through an api.Fetcher, adapts the response
// and then either dispatches state actions or hands the value back to the
// caller. Dependencies are fields on Operations; nothing is global.
//
// Error policy:
//
//   - FetchOffers and CheckAuth only manage shared state; they log failures
//     and convert them into state transitions.
//   - Login dispatches NO_AUTH and returns the error so the form can show it.
//   - FetchOfferByID, FetchNearbyOffers, FetchReviews, PostReview,
//     FetchFavorites and LoadOfferPage return errors to the caller.
//   - ToggleFavorite returns the toggle error but degrades a failed recount to
//     a local estimate.
//
// Overlapping FetchOffers calls and favorite recounts are guarded by a
// per-key generation counter: a response whose request has been superseded
// is dropped instead of overwriting newer state. Requests themselves are not
// cancelled or de-duplicated.
package ops

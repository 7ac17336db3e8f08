// Package state holds the client state tree and the pure functions that
// transform and read it.
//
// # Overview
//
// The tree has two partitions:
//
//	State
//	├── Offers  {Offers, City, IsLoading, Version}
//	└── Auth    {AuthorizationStatus, User, FavoriteCount}
//
// Each partition has a reducer (ReduceOffers, ReduceAuth). Reduce routes an
// Action through both. Reducers return their input untouched for actions
// they do not handle.
//
// # Store
//
// Store is the only owner of the tree. It is constructed once by the app and
// passed to consumers explicitly; there is no package-level store.
//
//	store := state.New()
//	store.Dispatch(state.ChangeCity{City: "Amsterdam"})
//	snap := store.State()
//
// Dispatch takes a write lock around the reducer call, so actions from
// concurrent operations are applied one at a time. Actions issued by a single
// goroutine are applied in issue order. State returns a copy: the offers
// slice is cloned and the user profile is copied.
//
// Subscribe hands out a coalescing wake-up channel for the UI.
//
// # Selectors
//
// The Select* functions are plain projections. OffersByCity caches its last
// result keyed on the offers Version and the active city. Because State
// clones the offers slice, slice identity cannot serve as the cache key, so
// the reducer bumps Version whenever it replaces the collection.
//
// SortOffers and GroupByCity derive the sorted list and the favorites
// grouping; they are not cached.
package state

// Package ui provides the terminal user interface of roost.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model (Model) rendered with Lip Gloss and the
// Bubbles components (viewport, textinput, textarea, key). It never talks to
// the API directly: reads come from state.Store snapshots and every action
// goes through ops.Operations inside a tea.Cmd, so the event loop never blocks
// on the network.
//
// # Views
//
//   - Offers: city tabs, offers of the active city in the chosen sort order
//   - Offer page: gallery, goods, host, description, reviews, nearby offers
//   - Favorites: saved offers grouped by city
//   - Sign in: email and password form
//   - Review: rating and comment form, validated with domain.ValidateReview
//   - Activity: tail of the roost log file
//
// # Data Flow
//
//	state.Store ──Subscribe()──> storeChangedMsg ──> Model.snapshot
//	key press ──> tea.Cmd(ops.X) ──> result msg ──> Model fields
//
// The offer list is derived with one state.OffersByCity selector per model,
// so auth-only store changes do not refilter offers.
//
// # Preferences
//
// Theme, sort order and the last active city are written to prefs.toml as
// soon as they change, and restored on the next start.
package ui

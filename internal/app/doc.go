// Package app is the composition root of roost.
//
// # Overview
//
// Run loads configuration, opens the activity log and token store, builds the
// API client, state store and operations, then hands everything to the TUI.
//
// # Startup
//
//  1. config.Load reads ~/.config/roost/config.toml, .env and ROOST_* variables
//  2. the slog text logger is opened on the configured log file
//  3. prefs.Load restores theme, sort order and last city
//  4. token.Open restores the saved session token
//  5. the active city is set and the session is checked (CheckAuth)
//  6. StartPoller begins reloading offers in the background
//  7. ui.Run blocks until the user quits or the context is cancelled
//
// # Polling Behavior
//
// The poller reloads offers immediately and then every PollEvery interval
// (default 30 seconds). After a failed reload it retries after 2 seconds and
// doubles the delay on each consecutive failure, capped at 30 seconds. A
// successful reload resets the schedule.
//
// # Error Handling
//
// Configuration, log and token-store failures are fatal and returned from Run.
// Network failures never are: they are logged and surface in the UI as stale
// data or an error line.
package app

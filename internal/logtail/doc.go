// Package logtail reads the tail of roost's activity log for display in the
// TUI.
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines, so only the last lines are kept
// in memory regardless of file size. A missing file returns no lines and no
// error; the log is created lazily on first write.
//
// # Parsing
//
// Parse understands the log/slog TextHandler format:
//
//	time=2026-01-02T15:04:05.000Z level=WARN msg="offers fetch failed" op=fetchOffers err="api GET /offers returned status 502"
//
// time, level and msg are lifted into Entry fields, everything else stays in
// Attrs in the original order. Malformed lines are kept verbatim in Message
// rather than dropped.
package logtail

// Package podscribe extracts episode transcripts from the Spotify web
// player. It drives a real browser when one is available and falls back
// to plain HTTP fetching plus HTML parsing when it is not, hiding the
// difference behind a single Session interface.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, http/, goquery/).
package podscribe

// Package carlot provides a local, CLI-based collector for vehicle listings.
// It detects which automotive marketplace a page belongs to, extracts the
// listings on it, normalizes them into a canonical Vehicle record, and keeps
// a deduplicated collection that can be searched, filtered and exported.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package carlot

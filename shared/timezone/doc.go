// Package timezone holds the console's local calendar timezone.
//
// Calendar month boundaries and the "today" highlight are computed from the
// year, month and day components in this location, never from UTC timestamps:
//
//	first := timezone.Date(2025, time.June, 1) // local midnight, June 1
//	today := timezone.Today()
//
// The timezone is configured via the APP_TIMEZONE environment variable using
// IANA names ("UTC", "Asia/Jakarta", "America/New_York") and is initialized when
// the package is imported.
package timezone

package domain

import "time"

// ─── Calendar Days ──────────────────────────────────────────────────────────
// Refill eligibility and streaks compare calendar days, never clock times.
// The location is an explicit policy choice (config, default UTC) so the
// day boundary is deterministic across deployments.

// StartOfDay floors t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween returns the whole calendar days from a to b in loc.
// Negative when b's day precedes a's. Both dates are re-anchored in UTC
// before subtracting so DST transitions cannot yield 23- or 25-hour days.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// DayString formats the calendar day of t in loc as YYYY-MM-DD.
// This is the canonical persisted form for date-only columns.
func DayString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}

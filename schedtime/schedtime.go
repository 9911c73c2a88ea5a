// Package schedtime provides the opaque timestamp and duration types the
// scheduler orders tasks by, along with wrap-safe comparisons.
//
// Time is an unsigned tick count rather than a wall-clock value: the
// scheduler never interprets it beyond ordering, so any monotonically
// increasing counter (a hardware free-running timer, a millisecond
// uptime counter, even a simulated counter in a test) is a valid clock
// source. Comparisons are defined over a rolling half-range window so
// that a counter which wraps from its maximum value back to zero is
// still ordered correctly, provided no task is scheduled more than half
// the window into the future.
package schedtime

// Time is an opaque, wrapping timestamp.
type Time uint64

// Duration is a signed offset between two Time values.
type Duration int64

// Clock returns the current Time. Implementations must be monotonic
// within the comparison window defined by Precedes/Follows and safe to
// call from foreground. A scheduler's ISR-side entries that take the
// current time (ISRScheduleIn/ISRScheduleNow) also call it from their
// caller's interrupt/ISR context.
type Clock func() Time

// Offset returns t advanced by d. d may be negative.
func Offset(t Time, d Duration) Time {
	return Time(int64(t) + int64(d))
}

// Precedes reports whether a comes strictly before b in the rolling
// comparison window, i.e. whether the signed difference b-a is
// positive. Equal timestamps neither precede nor follow each other.
//
// This is the two's-complement subtraction trick: compute b-a using
// unsigned wraparound arithmetic, then reinterpret the bit pattern as
// signed. That reinterpretation is exactly what makes a timestamp that
// has wrapped past its maximum value compare as "in the future" rather
// than "far in the past" -- naive `a < b` breaks the instant a counter
// wraps.
func Precedes(a, b Time) bool {
	return int64(b-a) > 0
}

// Follows reports whether a comes strictly after b, i.e. Precedes(b, a).
func Follows(a, b Time) bool {
	return Precedes(b, a)
}

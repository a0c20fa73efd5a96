// Package clock holds the pure timing-policy helpers used by the booking
// engine. Every function takes an explicit "now" so callers can freeze time
// in tests; nothing here reads the wall clock.
package clock

import "time"

const (
	// BookingLeadHours is the minimum lead time, in hours, before a slot's
	// start required to book it.
	BookingLeadHours = 1

	// CancellationLeadHours is the minimum lead time, in hours, before a
	// slot's start required for a student-initiated cancellation.
	CancellationLeadHours = 24
)

// RangesOverlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HoursUntil returns the number of hours from now until target. Negative for
// targets in the past.
func HoursUntil(target, now time.Time) float64 {
	return target.Sub(now).Hours()
}

// IsBookingAllowed reports whether a slot starting at slotStart may still be
// booked at now. Exactly one hour before start is already too late.
func IsBookingAllowed(slotStart, now time.Time) bool {
	return HoursUntil(slotStart, now) > BookingLeadHours
}

// IsCancellationAllowed reports whether a student may still cancel a booking
// for a slot starting at slotStart. Exactly 24 hours before start is already
// too late.
func IsCancellationAllowed(slotStart, now time.Time) bool {
	return HoursUntil(slotStart, now) > CancellationLeadHours
}

// IsPast reports whether a slot ending at slotEnd has already finished.
func IsPast(slotEnd, now time.Time) bool {
	return slotEnd.Before(now)
}

package domain

import "time"

// DateLayout is the calendar-date format used on the wire
const DateLayout = "2006-01-02"

// BlockingPolicy is the set of booking statuses that make a machine's
// date range unavailable. The set differs between call sites, so it is
// a parameter rather than a constant.
type BlockingPolicy []BookingStatus

var (
	// DefaultBlockingPolicy blocks confirmed and ongoing bookings
	DefaultBlockingPolicy = BlockingPolicy{StatusConfirmed, StatusOngoing}

	// StrictBlockingPolicy additionally blocks pending bookings
	StrictBlockingPolicy = BlockingPolicy{StatusConfirmed, StatusOngoing, StatusPending}
)

// Blocks checks if a status is part of the policy
func (p BlockingPolicy) Blocks(s BookingStatus) bool {
	for _, blocked := range p {
		if s == blocked {
			return true
		}
	}
	return false
}

// IsDateBlocked reports whether day falls inside any blocking booking's
// closed interval [start_date, end_date]. A booking with an unparseable
// date never blocks; the rest of the collection is still evaluated.
// O(bookings) per query — fine at tens of bookings per machine.
func IsDateBlocked(bookings []BookingRecord, day time.Time, policy BlockingPolicy) bool {
	day = truncateToDay(day)

	for _, b := range bookings {
		if !policy.Blocks(b.Status) {
			continue
		}

		start, err := time.Parse(DateLayout, b.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(DateLayout, b.EndDate)
		if err != nil {
			continue
		}

		if !day.Before(start) && !day.After(end) {
			return true
		}
	}

	return false
}

// BlockedDates returns every blocked day in [from, to] inclusive,
// in ascending order.
func BlockedDates(bookings []BookingRecord, from, to time.Time, policy BlockingPolicy) []time.Time {
	from = truncateToDay(from)
	to = truncateToDay(to)

	var blocked []time.Time
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if IsDateBlocked(bookings, day, policy) {
			blocked = append(blocked, day)
		}
	}
	return blocked
}

// HasBlockingOverlap reports whether the closed interval [start, end]
// overlaps any blocking booking's interval. Used when creating a booking
// to reject conflicting date ranges.
func HasBlockingOverlap(bookings []BookingRecord, start, end time.Time, policy BlockingPolicy) bool {
	start = truncateToDay(start)
	end = truncateToDay(end)

	for _, b := range bookings {
		if !policy.Blocks(b.Status) {
			continue
		}

		bStart, err := time.Parse(DateLayout, b.StartDate)
		if err != nil {
			continue
		}
		bEnd, err := time.Parse(DateLayout, b.EndDate)
		if err != nil {
			continue
		}

		if !start.After(bEnd) && !end.Before(bStart) {
			return true
		}
	}

	return false
}

// truncateToDay normalizes a time to midnight UTC so comparisons are
// calendar-date comparisons regardless of the caller's clock
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

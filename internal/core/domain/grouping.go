package domain

// StatusGroups maps each lifecycle bucket to the bookings in it
type StatusGroups map[BookingStatus][]BookingRecord

// GroupByStatus partitions bookings into the fixed lifecycle buckets.
// Relative input order is preserved within each bucket, every recognized
// booking lands in exactly one bucket, and empty buckets are present so
// callers can decide whether to hide them. Bookings with a status outside
// StatusOrder are dropped from all buckets; use UnknownStatuses to
// surface them.
func GroupByStatus(bookings []BookingRecord) StatusGroups {
	groups := make(StatusGroups, len(StatusOrder))
	for _, status := range StatusOrder {
		groups[status] = []BookingRecord{}
	}

	for _, b := range bookings {
		if _, ok := groups[b.Status]; !ok {
			continue
		}
		groups[b.Status] = append(groups[b.Status], b)
	}

	return groups
}

// UnknownStatuses returns the bookings whose status is not part of the
// fixed lifecycle enumeration, in input order. These are the bookings
// GroupByStatus silently drops.
func UnknownStatuses(bookings []BookingRecord) []BookingRecord {
	var unknown []BookingRecord
	for _, b := range bookings {
		if !ValidStatus(b.Status) {
			unknown = append(unknown, b)
		}
	}
	return unknown
}

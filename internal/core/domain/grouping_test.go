package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByStatus(t *testing.T) {
	bookings := []BookingRecord{
		{ID: 1, Status: StatusPending},
		{ID: 2, Status: StatusCompleted},
		{ID: 3, Status: StatusPending},
	}

	groups := GroupByStatus(bookings)

	// Every bucket present, even when empty
	require.Len(t, groups, len(StatusOrder))
	for _, status := range StatusOrder {
		_, ok := groups[status]
		assert.True(t, ok, "bucket %s missing", status)
	}

	// Stable partition: input order preserved within a bucket
	require.Len(t, groups[StatusPending], 2)
	assert.Equal(t, uint(1), groups[StatusPending][0].ID)
	assert.Equal(t, uint(3), groups[StatusPending][1].ID)

	require.Len(t, groups[StatusCompleted], 1)
	assert.Equal(t, uint(2), groups[StatusCompleted][0].ID)

	assert.Empty(t, groups[StatusConfirmed])
	assert.Empty(t, groups[StatusOngoing])
	assert.Empty(t, groups[StatusCancelled])
}

func TestGroupByStatus_DropsUnknownStatuses(t *testing.T) {
	bookings := []BookingRecord{
		{ID: 1, Status: StatusConfirmed},
		{ID: 2, Status: BookingStatus("ARCHIVED")},
	}

	groups := GroupByStatus(bookings)

	total := 0
	for _, bucket := range groups {
		total += len(bucket)
	}
	assert.Equal(t, 1, total, "unknown status must not land in any bucket")
}

func TestGroupByStatus_Empty(t *testing.T) {
	groups := GroupByStatus(nil)
	require.Len(t, groups, len(StatusOrder))
	for _, status := range StatusOrder {
		assert.Empty(t, groups[status])
	}
}

func TestUnknownStatuses(t *testing.T) {
	bookings := []BookingRecord{
		{ID: 1, Status: StatusConfirmed},
		{ID: 2, Status: BookingStatus("ARCHIVED")},
		{ID: 3, Status: BookingStatus("DRAFT")},
	}

	unknown := UnknownStatuses(bookings)
	require.Len(t, unknown, 2)
	assert.Equal(t, uint(2), unknown[0].ID)
	assert.Equal(t, uint(3), unknown[1].ID)

	assert.Nil(t, UnknownStatuses([]BookingRecord{{Status: StatusPending}}))
}

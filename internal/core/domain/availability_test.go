package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.Parse(DateLayout, value)
	require.NoError(t, err)
	return day
}

func TestIsDateBlocked(t *testing.T) {
	confirmed := BookingRecord{
		ID:        1,
		MachineID: 7,
		StartDate: "2024-06-01",
		EndDate:   "2024-06-05",
		Status:    StatusConfirmed,
	}

	tests := []struct {
		name     string
		bookings []BookingRecord
		day      string
		policy   BlockingPolicy
		want     bool
	}{
		{
			name:     "inside interval",
			bookings: []BookingRecord{confirmed},
			day:      "2024-06-03",
			policy:   DefaultBlockingPolicy,
			want:     true,
		},
		{
			name:     "start boundary inclusive",
			bookings: []BookingRecord{confirmed},
			day:      "2024-06-01",
			policy:   DefaultBlockingPolicy,
			want:     true,
		},
		{
			name:     "end boundary inclusive",
			bookings: []BookingRecord{confirmed},
			day:      "2024-06-05",
			policy:   DefaultBlockingPolicy,
			want:     true,
		},
		{
			name:     "day after interval",
			bookings: []BookingRecord{confirmed},
			day:      "2024-06-06",
			policy:   DefaultBlockingPolicy,
			want:     false,
		},
		{
			name: "cancelled never blocks",
			bookings: []BookingRecord{
				{StartDate: "2024-06-01", EndDate: "2024-06-05", Status: StatusCancelled},
			},
			day:    "2024-06-03",
			policy: DefaultBlockingPolicy,
			want:   false,
		},
		{
			name: "pending blocks only under strict policy",
			bookings: []BookingRecord{
				{StartDate: "2024-06-01", EndDate: "2024-06-05", Status: StatusPending},
			},
			day:    "2024-06-03",
			policy: StrictBlockingPolicy,
			want:   true,
		},
		{
			name: "pending ignored under default policy",
			bookings: []BookingRecord{
				{StartDate: "2024-06-01", EndDate: "2024-06-05", Status: StatusPending},
			},
			day:    "2024-06-03",
			policy: DefaultBlockingPolicy,
			want:   false,
		},
		{
			name: "zero-length interval blocks exactly that day",
			bookings: []BookingRecord{
				{StartDate: "2024-06-10", EndDate: "2024-06-10", Status: StatusOngoing},
			},
			day:    "2024-06-10",
			policy: DefaultBlockingPolicy,
			want:   true,
		},
		{
			name: "malformed start date skips that booking only",
			bookings: []BookingRecord{
				{StartDate: "not-a-date", EndDate: "2024-06-05", Status: StatusConfirmed},
				{StartDate: "2024-06-03", EndDate: "2024-06-03", Status: StatusConfirmed},
			},
			day:    "2024-06-03",
			policy: DefaultBlockingPolicy,
			want:   true,
		},
		{
			name: "malformed end date treated as non-blocking",
			bookings: []BookingRecord{
				{StartDate: "2024-06-01", EndDate: "June 5th", Status: StatusConfirmed},
			},
			day:    "2024-06-03",
			policy: DefaultBlockingPolicy,
			want:   false,
		},
		{
			name:     "no bookings",
			bookings: nil,
			day:      "2024-06-03",
			policy:   DefaultBlockingPolicy,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDateBlocked(tt.bookings, mustDay(t, tt.day), tt.policy)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsDateBlocked_IgnoresTimeOfDay(t *testing.T) {
	bookings := []BookingRecord{
		{StartDate: "2024-06-01", EndDate: "2024-06-05", Status: StatusConfirmed},
	}

	// Late-evening query on the end date still counts as that calendar day
	lateOnEndDate := time.Date(2024, 6, 5, 23, 30, 0, 0, time.Local)
	assert.True(t, IsDateBlocked(bookings, lateOnEndDate, DefaultBlockingPolicy))
}

func TestIsDateBlocked_DoesNotMutateInput(t *testing.T) {
	bookings := []BookingRecord{
		{ID: 1, StartDate: "2024-06-01", EndDate: "2024-06-05", Status: StatusConfirmed},
	}
	snapshot := make([]BookingRecord, len(bookings))
	copy(snapshot, bookings)

	IsDateBlocked(bookings, mustDay(t, "2024-06-03"), DefaultBlockingPolicy)
	assert.Equal(t, snapshot, bookings)
}

func TestBlockedDates(t *testing.T) {
	bookings := []BookingRecord{
		{StartDate: "2024-06-02", EndDate: "2024-06-03", Status: StatusConfirmed},
		{StartDate: "2024-06-03", EndDate: "2024-06-04", Status: StatusCancelled},
		{StartDate: "2024-06-06", EndDate: "2024-06-06", Status: StatusOngoing},
	}

	got := BlockedDates(bookings, mustDay(t, "2024-06-01"), mustDay(t, "2024-06-07"), DefaultBlockingPolicy)

	want := []time.Time{
		mustDay(t, "2024-06-02"),
		mustDay(t, "2024-06-03"),
		mustDay(t, "2024-06-06"),
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "expected %s at index %d, got %s", want[i], i, got[i])
	}
}

func TestHasBlockingOverlap(t *testing.T) {
	bookings := []BookingRecord{
		{StartDate: "2024-06-10", EndDate: "2024-06-15", Status: StatusConfirmed},
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"fully before", "2024-06-01", "2024-06-09", false},
		{"fully after", "2024-06-16", "2024-06-20", false},
		{"touching start boundary", "2024-06-05", "2024-06-10", true},
		{"touching end boundary", "2024-06-15", "2024-06-18", true},
		{"contained", "2024-06-11", "2024-06-12", true},
		{"containing", "2024-06-01", "2024-06-30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasBlockingOverlap(bookings, mustDay(t, tt.start), mustDay(t, tt.end), DefaultBlockingPolicy)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlockingPolicy_Blocks(t *testing.T) {
	assert.True(t, DefaultBlockingPolicy.Blocks(StatusConfirmed))
	assert.True(t, DefaultBlockingPolicy.Blocks(StatusOngoing))
	assert.False(t, DefaultBlockingPolicy.Blocks(StatusPending))
	assert.True(t, StrictBlockingPolicy.Blocks(StatusPending))
	assert.False(t, StrictBlockingPolicy.Blocks(StatusCancelled))
}

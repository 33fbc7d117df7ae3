package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m, s int) time.Time {
	return time.Date(2026, time.March, 10, h, m, s, 0, time.UTC)
}

func TestBillableSeconds_SplitsTickAcrossWindowStart(t *testing.T) {
	schedule := FocusSchedule{Enabled: true, Start: "09:00", End: "17:00"}

	billable := schedule.BillableSeconds(at(8, 59, 58), 5)

	assert.Equal(t, int64(3), billable, "only 09:00:00-09:00:03 is inside the window")
}

func TestBillableSeconds_SplitsTickAcrossWindowEnd(t *testing.T) {
	schedule := FocusSchedule{Enabled: true, Start: "09:00", End: "17:00"}

	assert.Equal(t, int64(4), schedule.BillableSeconds(at(16, 59, 56), 10))
}

func TestBillableSeconds_DisabledPassesThrough(t *testing.T) {
	schedule := FocusSchedule{Enabled: false, Start: "09:00", End: "17:00"}

	for _, delta := range []int64{1, 5, 59, 3600, 86400} {
		assert.Equal(t, delta, schedule.BillableSeconds(at(3, 0, 0), delta))
	}
}

func TestBillableSeconds_OutsideWindow(t *testing.T) {
	schedule := FocusSchedule{Enabled: true, Start: "09:00", End: "17:00"}

	assert.Equal(t, int64(0), schedule.BillableSeconds(at(20, 0, 0), 60))
	assert.Equal(t, int64(60), schedule.BillableSeconds(at(12, 0, 0), 60))
}

func TestBillableSeconds_OvernightWindow(t *testing.T) {
	schedule := FocusSchedule{Enabled: true, Start: "22:00", End: "06:00"}

	// 23:59:50 -> 00:00:10 stays inside the window across midnight
	assert.Equal(t, int64(20), schedule.BillableSeconds(at(23, 59, 50), 20))
	// 05:59:55 -> 06:00:05 leaves the window at 06:00
	assert.Equal(t, int64(5), schedule.BillableSeconds(at(5, 59, 55), 10))
}

func TestBillableSeconds_EmptyWindowCountsNothing(t *testing.T) {
	schedule := FocusSchedule{Enabled: true, Start: "09:00", End: "09:00"}

	assert.Equal(t, int64(0), schedule.BillableSeconds(at(9, 0, 0), 100))
}

func TestBillableSeconds_MultiDayTick(t *testing.T) {
	schedule := FocusSchedule{Enabled: true, Start: "09:00", End: "17:00"}

	// two full days starting at midnight contain two 8h windows
	start := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(2*8*3600), schedule.BillableSeconds(start, 2*86400))
}

func TestFocusScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid", "09:00", "17:30", false},
		{"end of day", "00:00", "24:00", false},
		{"missing minutes", "9", "17:00", true},
		{"bad hour", "25:00", "17:00", true},
		{"bad minute", "09:60", "17:00", true},
		{"garbage", "nine", "five", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FocusSchedule{Enabled: true, Start: tt.start, End: tt.end}.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSchedule)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseDeliveryDate(t *testing.T) {
	_, err := ParseDeliveryDate("2026-12-01")
	require.NoError(t, err)

	_, err = ParseDeliveryDate("2026-12-01T10:00:00Z")
	assert.ErrorIs(t, err, ErrInvalidDeliveryDate)
}

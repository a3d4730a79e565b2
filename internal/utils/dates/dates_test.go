package dates_test

import (
	"testing"
	"time"

	"github.com/fincontrolapp/fincontrol_backend/internal/utils/dates"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		in     time.Time
		months int
		want   time.Time
	}{
		{
			name:   "mid-month is unchanged",
			in:     date(2024, time.January, 15),
			months: 1,
			want:   date(2024, time.February, 15),
		},
		{
			name:   "jan 31 clamps to leap february",
			in:     date(2024, time.January, 31),
			months: 1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "jan 31 clamps to non-leap february",
			in:     date(2025, time.January, 31),
			months: 1,
			want:   date(2025, time.February, 28),
		},
		{
			name:   "may 31 clamps to june 30",
			in:     date(2024, time.May, 31),
			months: 1,
			want:   date(2024, time.June, 30),
		},
		{
			name:   "quarterly add preserves valid day",
			in:     date(2024, time.February, 10),
			months: 3,
			want:   date(2024, time.May, 10),
		},
		{
			name:   "quarterly add clamps nov 30 from aug 31",
			in:     date(2024, time.August, 31),
			months: 3,
			want:   date(2024, time.November, 30),
		},
		{
			name:   "yearly add preserves day",
			in:     date(2024, time.March, 17),
			months: 12,
			want:   date(2025, time.March, 17),
		},
		{
			name:   "yearly add from leap day clamps to feb 28",
			in:     date(2024, time.February, 29),
			months: 12,
			want:   date(2025, time.February, 28),
		},
		{
			name:   "crosses year boundary",
			in:     date(2024, time.December, 31),
			months: 1,
			want:   date(2025, time.January, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dates.AddMonthsClamped(tt.in, tt.months)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestAddMonthsClamped_PreservesClock(t *testing.T) {
	in := time.Date(2024, time.January, 31, 13, 45, 12, 0, time.UTC)
	got := dates.AddMonthsClamped(in, 1)
	assert.Equal(t, time.Date(2024, time.February, 29, 13, 45, 12, 0, time.UTC), got)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, dates.DaysInMonth(2024, time.February))
	assert.Equal(t, 28, dates.DaysInMonth(2025, time.February))
	assert.Equal(t, 31, dates.DaysInMonth(2024, time.January))
	assert.Equal(t, 30, dates.DaysInMonth(2024, time.April))
}

func TestStartOfDayUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2024, time.June, 10, 22, 30, 0, 0, loc) // 2024-06-11 01:30 UTC
	got := dates.StartOfDayUTC(in)
	assert.Equal(t, date(2024, time.June, 11), got)
}

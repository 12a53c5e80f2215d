package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/budget-tracker/internal/models"
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
			name:   "middle of month",
			in:     date(2024, time.March, 15),
			months: 1,
			want:   date(2024, time.April, 15),
		},
		{
			name:   "january 31 clamps to leap february",
			in:     date(2024, time.January, 31),
			months: 1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "january 31 clamps to regular february",
			in:     date(2023, time.January, 31),
			months: 1,
			want:   date(2023, time.February, 28),
		},
		{
			name:   "march 31 clamps to april 30",
			in:     date(2024, time.March, 31),
			months: 1,
			want:   date(2024, time.April, 30),
		},
		{
			name:   "year boundary",
			in:     date(2024, time.December, 15),
			months: 1,
			want:   date(2025, time.January, 15),
		},
		{
			name:   "leap day plus twelve months clamps to feb 28",
			in:     date(2024, time.February, 29),
			months: 12,
			want:   date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonthsClamped(tt.in, tt.months))
		})
	}
}

func TestNextPeriod(t *testing.T) {
	tests := []struct {
		name      string
		period    string
		oldEnd    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "weekly",
			period:    models.PeriodWeekly,
			oldEnd:    date(2024, time.January, 7),
			wantStart: date(2024, time.January, 8),
			wantEnd:   date(2024, time.January, 14),
		},
		{
			name:      "monthly end of january",
			period:    models.PeriodMonthly,
			oldEnd:    date(2024, time.January, 31),
			wantStart: date(2024, time.February, 1),
			wantEnd:   date(2024, time.February, 29),
		},
		{
			name:      "monthly regular",
			period:    models.PeriodMonthly,
			oldEnd:    date(2024, time.March, 14),
			wantStart: date(2024, time.March, 15),
			wantEnd:   date(2024, time.April, 14),
		},
		{
			name:      "yearly leap day",
			period:    models.PeriodYearly,
			oldEnd:    date(2024, time.February, 29),
			wantStart: date(2024, time.March, 1),
			wantEnd:   date(2025, time.February, 28),
		},
		{
			name:      "yearly regular",
			period:    models.PeriodYearly,
			oldEnd:    date(2024, time.June, 30),
			wantStart: date(2024, time.July, 1),
			wantEnd:   date(2025, time.June, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := NextPeriod(tt.period, tt.oldEnd)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.True(t, end.After(start), "end must be strictly after start")
		})
	}
}

func TestNextPeriod_UnknownPeriod(t *testing.T) {
	_, _, err := NextPeriod("daily", date(2024, time.January, 7))
	require.Error(t, err)
}

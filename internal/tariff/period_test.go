package tariff

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(month time.Month, day, hour, min int) time.Time {
	return time.Date(2024, month, day, hour, min, 0, 0, time.UTC)
}

func TestClassifyPartition(t *testing.T) {
	s := DefaultSchedule()

	// Every (month, hour) pair maps to exactly one of the three periods
	for month := time.January; month <= time.December; month++ {
		for hour := 0; hour < 24; hour++ {
			got := s.Classify(ts(month, 15, hour, 30))

			switch month {
			case time.April, time.May, time.June, time.July, time.August, time.September, time.October:
				assert.Equal(t, Summer, got, "month %s hour %d", month, hour)
			default:
				if (hour >= 7 && hour < 11) || (hour >= 17 && hour < 21) {
					assert.Equal(t, WinterPeak, got, "month %s hour %d", month, hour)
				} else {
					assert.Equal(t, WinterOffPeak, got, "month %s hour %d", month, hour)
				}
			}
		}
	}
}

func TestClassifyHourBoundaries(t *testing.T) {
	s := DefaultSchedule()

	cases := []struct {
		hour, min int
		want      Period
	}{
		{6, 59, WinterOffPeak},
		{7, 0, WinterPeak},
		{10, 59, WinterPeak},
		{11, 0, WinterOffPeak},
		{16, 59, WinterOffPeak},
		{17, 0, WinterPeak},
		{20, 59, WinterPeak},
		{21, 0, WinterOffPeak},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%02d:%02d", tc.hour, tc.min), func(t *testing.T) {
			assert.Equal(t, tc.want, s.Classify(ts(time.January, 10, tc.hour, tc.min)))
		})
	}
}

func TestClassifyMonthBoundaries(t *testing.T) {
	s := DefaultSchedule()

	// October 31 is summer at every hour, including winter-peak hours
	for hour := 0; hour < 24; hour++ {
		assert.Equal(t, Summer, s.Classify(ts(time.October, 31, hour, 0)), "hour %d", hour)
	}

	// November 1 switches to the winter rules
	assert.Equal(t, WinterPeak, s.Classify(ts(time.November, 1, 8, 0)))
	assert.Equal(t, WinterOffPeak, s.Classify(ts(time.November, 1, 12, 0)))

	// March is still winter, April is summer
	assert.Equal(t, WinterPeak, s.Classify(ts(time.March, 31, 18, 0)))
	assert.Equal(t, Summer, s.Classify(ts(time.April, 1, 18, 0)))
}

func TestClassifyFallback(t *testing.T) {
	// A schedule whose rules don't cover every month still classifies
	s := Schedule{
		Rules: []Rule{
			{Period: WinterPeak, Months: []time.Month{time.January}},
		},
		Fallback: Summer,
	}

	assert.Equal(t, WinterPeak, s.Classify(ts(time.January, 1, 0, 0)))
	assert.Equal(t, Summer, s.Classify(ts(time.June, 1, 0, 0)))
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// Overlapping rules resolve in order
	s := Schedule{
		Rules: []Rule{
			{Period: WinterPeak, Months: []time.Month{time.January}, Hours: []HourRange{{From: 7, To: 11}}},
			{Period: WinterOffPeak, Months: []time.Month{time.January}},
		},
		Fallback: Summer,
	}

	assert.Equal(t, WinterPeak, s.Classify(ts(time.January, 1, 8, 0)))
	assert.Equal(t, WinterOffPeak, s.Classify(ts(time.January, 1, 12, 0)))
}

func TestSchedulePeriods(t *testing.T) {
	s := DefaultSchedule()
	assert.Equal(t, []Period{WinterPeak, WinterOffPeak, Summer}, s.Periods())
}

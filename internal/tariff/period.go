package tariff

import "time"

// Period identifies a rate bucket in a time-of-use schedule
type Period string

// Periods for the two-season residential TOU schedule
const (
	WinterPeak    Period = "winter_peak"
	WinterOffPeak Period = "winter_off_peak"
	Summer        Period = "summer"
)

// HourRange is a half-open window of hours [From, To) in local time.
// A reading at hour From matches; one at hour To does not.
type HourRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Rule assigns a period to readings falling in any of its months and hour
// ranges. An empty Hours list covers every hour of the rule's months.
type Rule struct {
	Period Period       `yaml:"period"`
	Months []time.Month `yaml:"months"`
	Hours  []HourRange  `yaml:"hours,omitempty"`
}

func (r Rule) matches(month time.Month, hour int) bool {
	found := false
	for _, m := range r.Months {
		if m == month {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if len(r.Hours) == 0 {
		return true
	}
	for _, h := range r.Hours {
		if hour >= h.From && hour < h.To {
			return true
		}
	}
	return false
}

// Schedule is an ordered rule list evaluated first-match-wins. Fallback is
// returned when no rule matches, so classification is total: changing the
// rate calendar is a data change, not a code change.
type Schedule struct {
	Rules    []Rule `yaml:"rules"`
	Fallback Period `yaml:"fallback"`
}

// Classify maps a timestamp to its rate period using the timestamp's own
// local month and hour. No time zone conversion is applied; the export's
// stated local times are taken at face value.
func (s Schedule) Classify(t time.Time) Period {
	month := t.Month()
	hour := t.Hour()
	for _, r := range s.Rules {
		if r.matches(month, hour) {
			return r.Period
		}
	}
	return s.Fallback
}

// Periods returns the distinct periods of the schedule in rule order,
// with the fallback last if no rule names it. Used for stable display order.
func (s Schedule) Periods() []Period {
	var out []Period
	seen := make(map[Period]bool)
	for _, r := range s.Rules {
		if !seen[r.Period] {
			seen[r.Period] = true
			out = append(out, r.Period)
		}
	}
	if !seen[s.Fallback] {
		out = append(out, s.Fallback)
	}
	return out
}

var winterMonths = []time.Month{time.November, time.December, time.January, time.February, time.March}

var summerMonths = []time.Month{time.April, time.May, time.June, time.July, time.August, time.September, time.October}

// DefaultSchedule returns the utility's published rate calendar:
// November through March is winter, with peak pricing 7:00-10:59 and
// 17:00-20:59; April through October is a single summer period.
func DefaultSchedule() Schedule {
	return Schedule{
		Rules: []Rule{
			{
				Period: WinterPeak,
				Months: winterMonths,
				Hours:  []HourRange{{From: 7, To: 11}, {From: 17, To: 21}},
			},
			{
				Period: WinterOffPeak,
				Months: winterMonths,
			},
			{
				Period: Summer,
				Months: summerMonths,
			},
		},
		Fallback: Summer,
	}
}

package planning

import "time"

// =============================================================================
// DATE - Day-granular calendar date (this IS a calendar-driven system)
// =============================================================================

// Date is a calendar day in a single fixed time zone (UTC). All projection
// arithmetic is calendar-day addition on this type; no timezone conversion
// happens mid-projection, which avoids off-by-one drift across DST boundaries.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO-8601 date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// DateOf truncates an arbitrary timestamp to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.Time.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.normalize().Format("2006-01-02") }

func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// =============================================================================
// WEEKDAY SET - Allowed occurrence weekdays for daily plans
// =============================================================================

// WeekdaySet is the optional schedule_days_of_week constraint on a plan.
// An empty/nil set means "no restriction".
type WeekdaySet map[time.Weekday]bool

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	if len(days) == 0 {
		return nil
	}
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

func (s WeekdaySet) IsEmpty() bool { return len(s) == 0 }

func (s WeekdaySet) Contains(d time.Weekday) bool { return s[d] }

// Names returns the lowercase weekday names in Sunday..Saturday order.
// This is the wire/storage representation of the set.
func (s WeekdaySet) Names() []string {
	if s.IsEmpty() {
		return nil
	}
	var names []string
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if s[wd] {
			names = append(names, weekdayNames[wd])
		}
	}
	return names
}

// ParseWeekdaySet builds a set from lowercase weekday names.
// Unknown names are reported, not ignored.
func ParseWeekdaySet(names []string) (WeekdaySet, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := make(WeekdaySet, len(names))
	for _, name := range names {
		wd, ok := weekdaysByName[name]
		if !ok {
			return nil, &UnknownWeekdayError{Name: name}
		}
		set[wd] = true
	}
	return set, nil
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

package period

import "time"

const (
	LabelToday     = "Today"
	LabelTomorrow  = "Tomorrow"
	LabelYesterday = "Yesterday"
	LabelThisWeek  = "This week"
	LabelLastWeek  = "Last week"
	LabelNextWeek  = "Next week"
	LabelThisMonth = "This month"
	LabelLastMonth = "Last month"
	LabelNextMonth = "Next month"
	LabelThisYear  = "This year"
	LabelLastYear  = "Last year"
	LabelNextYear  = "Next year"

	InvalidDate = "Invalid Date"

	rangeSeparator = " – "
)

// TranslateFunc localizes a canonical label.
type TranslateFunc func(label string) string

// Untranslated returns labels as they are.
func Untranslated(label string) string {
	return label
}

type canonicalRange struct {
	label string
	begin time.Time
	end   time.Time
}

// canonicalRanges returns the label ladder relative to now, in matching order.
func canonicalRanges(now time.Time, weekStartDay time.Weekday) []canonicalRange {
	today := StartOfDay(now)
	day := func(offset int) canonicalRange {
		start := today.AddDate(0, 0, offset)
		return canonicalRange{begin: start, end: EndOfDay(start)}
	}

	thisWeek := StartOfWeek(now, weekStartDay)
	week := func(offset int) canonicalRange {
		start := thisWeek.AddDate(0, 0, 7*offset)
		return canonicalRange{begin: start, end: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
	}

	year, month, _ := now.Date()
	loc := now.Location()
	monthRange := func(offset int) canonicalRange {
		start := time.Date(year, month+time.Month(offset), 1, 0, 0, 0, 0, loc)
		return canonicalRange{begin: start, end: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	}
	yearRange := func(offset int) canonicalRange {
		start := time.Date(year+offset, time.January, 1, 0, 0, 0, 0, loc)
		return canonicalRange{begin: start, end: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
	}

	labelled := func(label string, r canonicalRange) canonicalRange {
		r.label = label
		return r
	}
	return []canonicalRange{
		labelled(LabelToday, day(0)),
		labelled(LabelTomorrow, day(1)),
		labelled(LabelYesterday, day(-1)),
		labelled(LabelThisWeek, week(0)),
		labelled(LabelLastWeek, week(-1)),
		labelled(LabelNextWeek, week(1)),
		labelled(LabelThisMonth, monthRange(0)),
		labelled(LabelLastMonth, monthRange(-1)),
		labelled(LabelNextMonth, monthRange(1)),
		labelled(LabelThisYear, yearRange(0)),
		labelled(LabelLastYear, yearRange(-1)),
		labelled(LabelNextYear, yearRange(1)),
	}
}

// LabelForRange describes a range relative to now, in now's location. Both bounds must fall on the
// same days as a canonical range for its label to be used; otherwise the range is formatted as
// "dd/MM – dd/MM/yyyy", or "dd/MM/yyyy – dd/MM/yyyy" when the years differ.
// Unparsable bounds are rendered as "Invalid Date". A nil t leaves labels untranslated.
func LabelForRange(key RangeKey, now time.Time, weekStartDay time.Weekday, t TranslateFunc) string {
	if t == nil {
		t = Untranslated
	}
	loc := now.Location()
	begin, beginErr := parseTimestamp(key.Begin, loc)
	end, endErr := parseTimestamp(key.End, loc)

	if beginErr == nil && endErr == nil {
		for _, c := range canonicalRanges(now, weekStartDay) {
			if IsSameDay(begin, c.begin, loc) && IsSameDay(end, c.end, loc) {
				return t(c.label)
			}
		}
	}

	beginText, endText := InvalidDate, InvalidDate
	if endErr == nil {
		endText = end.In(loc).Format("02/01/2006")
	}
	if beginErr == nil {
		sameYear := endErr == nil && begin.In(loc).Year() == end.In(loc).Year()
		if sameYear {
			beginText = begin.In(loc).Format("02/01")
		} else {
			beginText = begin.In(loc).Format("02/01/2006")
		}
	}
	return beginText + rangeSeparator + endText
}

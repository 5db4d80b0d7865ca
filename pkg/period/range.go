package period

import "time"

// RangeKey identifies a bucket. Two ranges are the same bucket only when both raw bounds match exactly.
type RangeKey struct {
	Begin string
	End   string
}

// NewRange builds a RangeKey from two instants. Bounds are kept at full precision so that ranges
// differing by a single nanosecond stay apart.
func NewRange(begin, end time.Time) RangeKey {
	return RangeKey{
		Begin: begin.UTC().Format(time.RFC3339Nano),
		End:   end.UTC().Format(time.RFC3339Nano),
	}
}

// String returns the composite "begin-end" form.
func (k RangeKey) String() string {
	return k.Begin + "-" + k.End
}

// Bounds parses both ends. Date-only bounds are read as midnight in loc. ok is false when either
// bound is not a valid timestamp.
func (k RangeKey) Bounds(loc *time.Location) (begin time.Time, end time.Time, ok bool) {
	begin, beginErr := parseTimestamp(k.Begin, loc)
	end, endErr := parseTimestamp(k.End, loc)
	return begin, end, beginErr == nil && endErr == nil
}

func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.DateOnly, value, loc)
}

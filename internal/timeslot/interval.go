package timeslot

// Interval is a half-open [Start, End) range in minutes since midnight of one
// calendar date. End may exceed MinutesPerDay for windows that run past midnight.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds the window for a booking that starts at start and ends at
// end. A nil end means start+defaultDuration. An end at or before the start is
// read as the following morning, so the window stays increasing.
func NewInterval(start int, end *int, defaultDuration int) Interval {
	if end == nil {
		return Interval{Start: start, End: start + defaultDuration}
	}
	e := *end
	if e <= start {
		e += MinutesPerDay
	}
	return Interval{Start: start, End: e}
}

// Widen returns the interval extended by buffer minutes on both sides.
func (i Interval) Widen(buffer int) Interval {
	return Interval{Start: i.Start - buffer, End: i.End + buffer}
}

// Contains reports whether minute m falls inside [Start, End).
func (i Interval) Contains(m int) bool {
	return i.Start <= m && m < i.End
}

// Duration is the interval length in minutes.
func (i Interval) Duration() int {
	return i.End - i.Start
}

// Overlaps reports whether two half-open intervals intersect. Intervals that
// only touch at an endpoint do not overlap. Callers widen both sides by the
// turnover buffer beforehand; no buffer is applied here.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

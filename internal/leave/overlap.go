package leave

import "time"

// Date ranges are inclusive whole days. All comparisons treat a range
// as the half-open interval [DayStart(from), NextDay(to)) so the final
// day of each range counts, single-day ranges included.

// DayStart truncates t to midnight UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDay is midnight UTC of the day after t.
func NextDay(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// DayBounds returns [today, tomorrow) for the day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := DayStart(t)
	return start, start.AddDate(0, 0, 1)
}

// Overlaps reports whether the inclusive day ranges [aFrom, aTo] and
// [bFrom, bTo] share at least one calendar day. Symmetric in its
// arguments.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return DayStart(aFrom).Before(NextDay(bTo)) && !DayStart(aTo).Before(DayStart(bFrom))
}

// CoversDay reports whether the inclusive range [from, to] contains
// the calendar day of ref.
func CoversDay(from, to, ref time.Time) bool {
	day := DayStart(ref)
	return Overlaps(from, to, day, day)
}

// OnLeaveToday reports whether any APPROVED request in leaves covers
// the calendar day of ref. Pure function of its inputs; "now" only
// enters through the caller-supplied reference day.
func OnLeaveToday(leaves []LeaveRequest, ref time.Time) bool {
	for _, l := range leaves {
		if l.Status != StatusApproved {
			continue
		}
		if CoversDay(l.FromDate, l.ToDate, ref) {
			return true
		}
	}
	return false
}

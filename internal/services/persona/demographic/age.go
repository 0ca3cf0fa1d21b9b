package demographic

import (
	"math/rand/v2"
	"time"
)

// DateLayout formats birth dates in records.
const DateLayout = "2006-01-02"

// Age returns whole years between birth and now.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// BirthDateForAge draws a birth date uniformly among the days whose Age on
// now falls within [minAge, maxAge].
func BirthDateForAge(rng *rand.Rand, now time.Time, minAge, maxAge int) time.Time {
	today := dateOf(now)
	latest := yearsBefore(today, minAge)
	earliest := yearsBefore(today, maxAge+1).AddDate(0, 0, 1)
	span := int(latest.Sub(earliest) / (24 * time.Hour))
	if span <= 0 {
		return latest
	}
	return earliest.AddDate(0, 0, rng.IntN(span+1))
}

// dateOf truncates t to its calendar date in UTC so day arithmetic never
// crosses a daylight-saving boundary.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// yearsBefore moves back n calendar years, turning Feb 29 into Feb 28 in
// non-leap years.
func yearsBefore(day time.Time, n int) time.Time {
	year := day.Year() - n
	d := day.Day()
	if day.Month() == time.February && d == 29 && !isLeap(year) {
		d = 28
	}
	return time.Date(year, day.Month(), d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

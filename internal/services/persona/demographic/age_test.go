package demographic

import (
	"math/rand/v2"
	"testing"
	"time"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	now := day(2026, time.October, 18)
	tests := []struct {
		birth time.Time
		want  int
	}{
		{birth: day(1996, time.October, 18), want: 30},
		{birth: day(1996, time.October, 19), want: 29},
		{birth: day(1996, time.September, 30), want: 30},
		{birth: day(2026, time.October, 18), want: 0},
	}
	for _, tc := range tests {
		if got := Age(tc.birth, now); got != tc.want {
			t.Fatalf("Age(%s) = %d, want %d", tc.birth.Format(DateLayout), got, tc.want)
		}
	}
}

func TestBirthDateForAgeStaysInRange(t *testing.T) {
	rng := testRNG(1)
	nows := []time.Time{
		day(2026, time.October, 18),
		day(2028, time.February, 29),
		day(2027, time.January, 1),
		day(2026, time.December, 31),
	}
	for _, now := range nows {
		for lo := 0; lo <= 130; lo += 13 {
			for _, hi := range []int{lo, lo + 1, lo + 7, 130} {
				if hi < lo {
					continue
				}
				for i := 0; i < 20; i++ {
					birth := BirthDateForAge(rng, now, lo, hi)
					if age := Age(birth, now); age < lo || age > hi {
						t.Fatalf("now %s range [%d,%d]: birth %s has age %d",
							now.Format(DateLayout), lo, hi, birth.Format(DateLayout), age)
					}
				}
			}
		}
	}
}

func TestBirthDateForAgeCoversBoundaries(t *testing.T) {
	now := day(2026, time.October, 18)
	rng := testRNG(2)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		seen[Age(BirthDateForAge(rng, now, 30, 31), now)] = true
	}
	if !seen[30] || !seen[31] {
		t.Fatalf("expected both ages 30 and 31, saw %v", seen)
	}
}

func TestYearsBeforeClampsLeapDay(t *testing.T) {
	got := yearsBefore(day(2028, time.February, 29), 1)
	if !got.Equal(day(2027, time.February, 28)) {
		t.Fatalf("yearsBefore = %s, want 2027-02-28", got.Format(DateLayout))
	}
	got = yearsBefore(day(2028, time.February, 29), 4)
	if !got.Equal(day(2024, time.February, 29)) {
		t.Fatalf("yearsBefore = %s, want 2024-02-29", got.Format(DateLayout))
	}
}

// Package idnumber builds and validates 18-character resident identity
// numbers (GB 11643, MOD 11-2 check character).
package idnumber

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Length is the number of characters in an identity number.
const Length = 18

var weights = [17]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}

const checkTable = "10X98765432"

var (
	// ErrAreaCode reports an area code that is not six digits.
	ErrAreaCode = errors.New("area code must be 6 digits")
	// ErrFormat reports an identity number with the wrong shape.
	ErrFormat = errors.New("identity number must be 17 digits and a check character")
	// ErrChecksum reports a check character that does not match the body.
	ErrChecksum = errors.New("identity number check character mismatch")
)

// Compute assembles area code, birth date, a random two-digit sequence and
// a gender digit (odd for male, even for female), then appends the check
// character.
func Compute(rng *rand.Rand, areaCode string, birth time.Time, male bool) (string, error) {
	if len(areaCode) != 6 || !allDigits(areaCode) {
		return "", fmt.Errorf("%w: %q", ErrAreaCode, areaCode)
	}
	genderDigit := 2 * rng.IntN(5)
	if male {
		genderDigit++
	}
	body := fmt.Sprintf("%s%s%02d%d", areaCode, birth.Format("20060102"), rng.IntN(100), genderDigit)
	check, err := Checksum(body)
	if err != nil {
		return "", err
	}
	return body + string(check), nil
}

// Checksum returns the MOD 11-2 check character for a 17-digit body.
func Checksum(body string) (byte, error) {
	if len(body) != 17 || !allDigits(body) {
		return 0, ErrFormat
	}
	sum := 0
	for i := 0; i < 17; i++ {
		sum += int(body[i]-'0') * weights[i]
	}
	return checkTable[sum%11], nil
}

// Validate checks shape and check character.
func Validate(id string) error {
	if len(id) != Length {
		return ErrFormat
	}
	check, err := Checksum(id[:17])
	if err != nil {
		return err
	}
	if id[17] != check {
		return ErrChecksum
	}
	return nil
}

// IsMale reports the gender encoded by the 17th digit.
func IsMale(id string) bool {
	return len(id) >= 17 && (id[16]-'0')%2 == 1
}

// BirthDate extracts the encoded birth date.
func BirthDate(id string) (time.Time, error) {
	if len(id) < 14 {
		return time.Time{}, ErrFormat
	}
	return time.Parse("20060102", id[6:14])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

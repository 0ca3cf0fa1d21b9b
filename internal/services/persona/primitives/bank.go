package primitives

import (
	"math/rand/v2"
	"strings"
)

// CardLength is the digit count of generated debit cards.
const CardLength = 19

// MinCardholderAge is the youngest age that holds a bank card.
const MinCardholderAge = 10

// NoCard marks a persona without a bank account.
const NoCard = "无"

var banks = []struct {
	name string
	bins []string
}{
	{"中国工商银行", []string{"622202", "621226", "622208"}},
	{"中国农业银行", []string{"622848", "622845", "622822"}},
	{"中国银行", []string{"621661", "621660", "456350"}},
	{"中国建设银行", []string{"621700", "621081", "623668"}},
}

// BankCard draws an issuing bank and a Luhn-valid card number. People
// younger than MinCardholderAge get NoCard for both.
func BankCard(rng *rand.Rand, age int) (bank, card string) {
	if age < MinCardholderAge {
		return NoCard, NoCard
	}
	b := banks[rng.IntN(len(banks))]
	return b.name, LuhnNumber(rng, b.bins[rng.IntN(len(b.bins))], CardLength)
}

// LuhnNumber pads prefix with random digits and appends the Luhn check digit
// so the result has length digits.
func LuhnNumber(rng *rand.Rand, prefix string, length int) string {
	var b strings.Builder
	b.Grow(length)
	b.WriteString(prefix)
	for b.Len() < length-1 {
		b.WriteByte(byte('0' + rng.IntN(10)))
	}
	body := b.String()
	return body + string(rune('0'+luhnCheck(body)))
}

// LuhnValid reports whether a digit string passes the Luhn check.
func LuhnValid(number string) bool {
	if len(number) < 2 {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	last := len(number) - 1
	return int(number[last]-'0') == luhnCheck(number[:last])
}

// luhnCheck computes the check digit for body, doubling every second digit
// from the right starting with the rightmost.
func luhnCheck(body string) int {
	sum := 0
	for i := 0; i < len(body); i++ {
		d := int(body[len(body)-1-i] - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

package primitives

import (
	"fmt"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
)

// TempMailInbox is the public inbox page for every disposable domain.
const TempMailInbox = "https://yopmail.com/zh/?"

// PasswordLength is the length of generated passwords.
const PasswordLength = 12

var freeEmailDomains = []string{
	"qq.com", "163.com", "126.com", "sina.com", "sohu.com",
	"gmail.com", "hotmail.com", "yahoo.com",
}

var tempMailDomains = []string{"yopmail.com", "yopmail.net", "cool.fr.nf", "jetable.fr.nf"}

// Accounts draws online account values. It shares its source with the
// persona generator so seeded runs stay reproducible.
type Accounts struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// NewAccounts builds account helpers over rng and the source behind it.
func NewAccounts(rng *rand.Rand, src rand.Source) *Accounts {
	return &Accounts{rng: rng, faker: gofakeit.NewFaker(src, false)}
}

// Username derives a handle from the person's name. Common surnames
// produce a pinyin-linked handle; anything else gets a generic one.
func (a *Accounts) Username(name string) string {
	py, ok := SurnamePinyin(name)
	if !ok {
		return a.faker.Username()
	}
	switch a.rng.IntN(3) {
	case 0:
		return fmt.Sprintf("%s.%d", py, 10+a.rng.IntN(990))
	case 1:
		return fmt.Sprintf("%s%d", py, 1980+a.rng.IntN(31))
	default:
		return prefix(a.faker.Username(), 3) + "." + py
	}
}

// Password draws a mixed-case alphanumeric password.
func (a *Accounts) Password() string {
	return a.faker.Password(true, true, true, false, false, PasswordLength)
}

// Email pairs the username with a free mail domain.
func (a *Accounts) Email(username string) string {
	return username + "@" + freeEmailDomains[a.rng.IntN(len(freeEmailDomains))]
}

// TempMail pairs the username with a disposable domain and returns the
// address together with its inbox URL.
func (a *Accounts) TempMail(username string) (address, inbox string) {
	domain := tempMailDomains[a.rng.IntN(len(tempMailDomains))]
	return username + "@" + domain, TempMailInbox + username
}

// WebHome draws a personal home page URL.
func (a *Accounts) WebHome() string {
	return a.faker.URL()
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

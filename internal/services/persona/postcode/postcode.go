// Package postcode resolves six-digit postal codes for administrative
// addresses.
package postcode

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/louisbranch/zhpersona/internal/services/persona/geo"
)

// prefixes maps province name fragments to postal zone prefixes. Order
// matters only for overlapping fragments, none of which overlap today.
var prefixes = []struct {
	fragment string
	prefix   string
}{
	{"北京", "10"}, {"上海", "20"}, {"天津", "30"}, {"重庆", "40"},
	{"辽宁", "11"}, {"吉林", "13"}, {"黑龙江", "15"}, {"江苏", "21"},
	{"浙江", "31"}, {"安徽", "23"}, {"福建", "35"}, {"内蒙古", "01"},
	{"江西", "33"}, {"山东", "25"}, {"河南", "45"}, {"湖北", "43"},
	{"湖南", "41"}, {"广东", "51"}, {"广西", "53"}, {"海南", "57"},
	{"四川", "61"}, {"贵州", "55"}, {"云南", "65"}, {"西藏", "85"},
	{"陕西", "71"}, {"甘肃", "73"}, {"青海", "81"}, {"宁夏", "75"},
	{"新疆", "83"}, {"河北", "05"}, {"山西", "03"},
}

// Index maps composite address strings to postal codes.
type Index struct {
	byAddress map[string]string
}

// New inverts a code → address table. Codes are visited in ascending order
// and a later code replaces an earlier one sharing the same address.
func New(byCode map[string]string) *Index {
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	byAddress := make(map[string]string, len(codes))
	for _, code := range codes {
		address := strings.TrimSpace(byCode[code])
		if address == "" {
			continue
		}
		byAddress[address] = code
	}
	return &Index{byAddress: byAddress}
}

// Decode parses the postcode dataset: code → full address string.
func Decode(raw []byte) (*Index, error) {
	var byCode map[string]string
	if err := json.Unmarshal(raw, &byCode); err != nil {
		return nil, fmt.Errorf("decode postcodes: %w", err)
	}
	return New(byCode), nil
}

// Len reports how many addresses are indexed.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.byAddress)
}

// Lookup tries composite keys from most to least specific and returns the
// first hit.
func (ix *Index) Lookup(province, city, district string) (string, bool) {
	if ix == nil {
		return "", false
	}
	cleanProvince := strings.NewReplacer("省", "", "市", "", "自治区", "").Replace(province)
	candidates := []string{
		province + city + district,
		cleanProvince + city + district,
		city + district,
		district,
		province + city,
		province,
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if code, ok := ix.byAddress[candidate]; ok {
			return code, true
		}
	}
	return "", false
}

// Resolve returns the indexed code or a province-prefixed fallback.
func (ix *Index) Resolve(rng *rand.Rand, province, city, district string) string {
	if code, ok := ix.Lookup(province, city, district); ok {
		return code
	}
	return Fallback(rng, province)
}

// Fallback synthesizes a code from the province's postal zone prefix, or
// "00" for unknown provinces, followed by four random digits.
func Fallback(rng *rand.Rand, province string) string {
	return fmt.Sprintf("%s%04d", Prefix(province), rng.IntN(10000))
}

// Prefix returns the two-digit postal zone for a province name.
func Prefix(province string) string {
	for _, p := range prefixes {
		if geo.NameContains(province, p.fragment) {
			return p.prefix
		}
	}
	return "00"
}

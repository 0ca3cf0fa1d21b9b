// Package phone maps provinces and cities to mobile number prefixes and
// synthesizes numbers that match a locale.
package phone

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/louisbranch/zhpersona/internal/services/persona/geo"
)

var municipalities = []string{"北京", "上海", "天津", "重庆"}

// Directory is a read-only province → city → prefix table.
type Directory struct {
	provinces []string
	cities    map[string][]string
	table     map[string]map[string][]string
}

// New builds a directory over table. Key order is fixed so lookups that
// match several keys resolve the same way on every run.
func New(table map[string]map[string][]string) *Directory {
	d := &Directory{
		cities: make(map[string][]string, len(table)),
		table:  table,
	}
	for province, cities := range table {
		d.provinces = append(d.provinces, province)
		keys := make([]string, 0, len(cities))
		for city := range cities {
			keys = append(keys, city)
		}
		sort.Strings(keys)
		d.cities[province] = keys
	}
	sort.Strings(d.provinces)
	return d
}

// Decode parses the phone dataset: province → city → [prefix].
func Decode(raw []byte) (*Directory, error) {
	var table map[string]map[string][]string
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode phone directory: %w", err)
	}
	return New(table), nil
}

// ProvinceKey strips province-level suffixes.
func ProvinceKey(province string) string {
	return stripAll(province, "市", "省", "自治区")
}

// CityKey strips city-level suffixes.
func CityKey(city string) string {
	return stripAll(city, "市", "地区", "盟")
}

// IsMunicipality reports whether the province key names one of the four
// centrally administered municipalities.
func IsMunicipality(provinceKey string) bool {
	for _, m := range municipalities {
		if provinceKey == m {
			return true
		}
	}
	return false
}

// Lookup returns the prefixes for a province/city pair, or nil.
func (d *Directory) Lookup(province, city string) []string {
	if d == nil {
		return nil
	}
	pKey := ProvinceKey(province)
	matchedProvince, ok := matchKey(d.provinces, pKey)
	if !ok {
		return nil
	}
	cKey := CityKey(city)
	if IsMunicipality(pKey) && (cKey == "辖区" || cKey == "市辖区" || cKey == "县") {
		cKey = pKey
	}
	matchedCity, ok := matchKey(d.cities[matchedProvince], cKey)
	if !ok {
		return nil
	}
	return d.table[matchedProvince][matchedCity]
}

// Generate returns a number for the locale: a known prefix plus four digits,
// or a generic 13x mobile number when the locale has no prefixes.
func (d *Directory) Generate(rng *rand.Rand, province, city string) string {
	if prefixes := d.Lookup(province, city); len(prefixes) > 0 {
		prefix := prefixes[rng.IntN(len(prefixes))]
		return fmt.Sprintf("%s%04d", prefix, rng.IntN(10000))
	}
	return Fallback(rng)
}

// Fallback synthesizes a generic valid-looking mobile number.
func Fallback(rng *rand.Rand) string {
	return fmt.Sprintf("13%d%08d", rng.IntN(10), rng.IntN(100000000))
}

// Location labels where a number is registered: the city, or the province
// when the city level is only an administrative placeholder.
func Location(province, city string) string {
	switch city {
	case "市辖区", "县", "省直辖县级行政区划", "自治区直辖县级行政区划", "":
		return province
	}
	return city
}

// matchKey finds the first key where either string contains the other.
func matchKey(keys []string, want string) (string, bool) {
	if want == "" {
		return "", false
	}
	for _, k := range keys {
		if geo.NameContains(k, want) || geo.NameContains(want, k) {
			return k, true
		}
	}
	return "", false
}

func stripAll(s string, suffixes ...string) string {
	for _, suffix := range suffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	return strings.TrimSpace(s)
}

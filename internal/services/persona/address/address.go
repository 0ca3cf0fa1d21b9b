// Package address classifies a geography chain as urban or rural and
// synthesizes a plausible street address for it.
package address

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/louisbranch/zhpersona/internal/services/persona/geo"
)

var (
	urbanTownMarkers = []string{"街道", "地区", "社区", "开发区"}
	ruralTownMarkers = []string{"乡", "镇", "林场", "农场"}

	// preferredUrbanTowns is narrower than urbanTownMarkers: 社区 towns are
	// urban but rarely host office districts.
	preferredUrbanTowns = []string{"街道", "地区", "开发区"}

	urbanCorpusMarkers = []string{"社区", "居委会"}
	urbanSuffixes      = []string{"居民委员会", "社区居委会", "居委会", "社区", "村民委员会", "村委会"}
	ruralSuffixes      = []string{"村民委员会", "村委会", "居委会"}

	estateNames    = []string{"阳光", "时代", "世纪", "国际", "理想", "中心", "滨江", "华府", "万科", "金地"}
	estateSuffixes = []string{"小区", "花园", "苑", "家园", "新村", "府"}
	roadNames      = []string{"朝阳", "建设", "胜利", "解放", "中山", "人民", "新华"}
	roadSuffixes   = []string{"路", "街"}

	villagePrefixes = []string{"张家", "李家", "王家", "赵家", "大", "小", "新"}
	villageSuffixes = []string{"村", "庄", "屯"}
	villageEndings  = []string{"村", "庄", "队"}
)

// Address is a composed street address with its geography.
type Address struct {
	Province    string
	City        string
	District    string
	Town        string
	IsUrban     bool
	Street      string
	FullAddress string
}

// VillageNames supplies raw committee names for a town code.
type VillageNames interface {
	Names(townCode string) []string
}

// Composer builds addresses, drawing estate and village names from a
// corpus when one is available.
type Composer struct {
	villages VillageNames
}

// NewComposer creates a composer. A nil corpus falls back to curated pools.
func NewComposer(villages VillageNames) *Composer {
	return &Composer{villages: villages}
}

// ClassifyUrban applies the town-name markers first and falls back to the
// district name when the town is silent.
func ClassifyUrban(town, district string) bool {
	if containsAny(town, urbanTownMarkers) {
		return true
	}
	if containsAny(town, ruralTownMarkers) {
		return false
	}
	return strings.Contains(district, "区") || strings.Contains(district, "市")
}

// Compose classifies the chain and builds the matching address.
func (c *Composer) Compose(rng *rand.Rand, chain geo.Chain) Address {
	town, _ := townOf(chain)
	if ClassifyUrban(town, chain.District.Name) {
		return c.ComposeUrban(rng, chain)
	}
	return c.ComposeRural(rng, chain)
}

// ComposeUrban builds "{town}{road}{estate}{building}号楼{unit}单元{floor}0{room}室".
func (c *Composer) ComposeUrban(rng *rand.Rand, chain geo.Chain) Address {
	town, code := townOf(chain)
	base := ""
	if names := c.names(code); len(names) > 0 {
		pool := filterContaining(names, urbanCorpusMarkers)
		if len(pool) == 0 {
			pool = names
		}
		base = stripAll(pool[rng.IntN(len(pool))], urbanSuffixes)
	}
	if utf8.RuneCountInString(base) < 2 {
		base = choose(rng, estateNames)
	}
	estate := base + choose(rng, estateSuffixes)
	road := choose(rng, roadNames) + choose(rng, roadSuffixes)
	street := fmt.Sprintf("%s%s%s%d号楼%d单元%d0%d室",
		town, road, estate,
		between(rng, 1, 50), between(rng, 1, 5), between(rng, 1, 30), between(rng, 1, 4))
	return build(chain, town, true, street)
}

// ComposeRural builds "{town}{village}{house}号".
func (c *Composer) ComposeRural(rng *rand.Rand, chain geo.Chain) Address {
	town, code := townOf(chain)
	name := ""
	if names := c.names(code); len(names) > 0 {
		name = stripAll(names[rng.IntN(len(names))], ruralSuffixes)
		if name != "" && !hasAnySuffix(name, villageEndings) {
			name += "村"
		}
	}
	if name == "" {
		name = choose(rng, villagePrefixes) + choose(rng, villageSuffixes)
		if !strings.HasSuffix(name, "村") {
			name += "村"
		}
	}
	street := fmt.Sprintf("%s%s%d号", town, name, between(rng, 1, 100))
	return build(chain, town, false, street)
}

// PreferUrbanTown re-selects the chain's town among the district's
// 街道/地区/开发区 towns when there are any.
func PreferUrbanTown(rng *rand.Rand, chain geo.Chain) geo.Chain {
	var urban []geo.AdminNode
	for _, t := range chain.District.Children {
		if containsAny(t.Name, preferredUrbanTowns) {
			urban = append(urban, t)
		}
	}
	if len(urban) > 0 {
		chain.Town = urban[rng.IntN(len(urban))]
	}
	return chain
}

func (c *Composer) names(townCode string) []string {
	if c == nil || c.villages == nil || townCode == "" {
		return nil
	}
	return c.villages.Names(townCode)
}

func townOf(chain geo.Chain) (name, code string) {
	if !chain.HasTown() {
		return "", ""
	}
	return chain.Town.Name, chain.Town.Code
}

func build(chain geo.Chain, town string, urban bool, street string) Address {
	return Address{
		Province:    chain.Province.Name,
		City:        chain.City.Name,
		District:    chain.District.Name,
		Town:        town,
		IsUrban:     urban,
		Street:      street,
		FullAddress: chain.Province.Name + chain.City.Name + chain.District.Name + street,
	}
}

func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func choose(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}

func containsAny(s string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func filterContaining(names []string, parts []string) []string {
	var out []string
	for _, n := range names {
		if containsAny(n, parts) {
			out = append(out, n)
		}
	}
	return out
}

func stripAll(s string, suffixes []string) string {
	for _, suffix := range suffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	return strings.TrimSpace(s)
}

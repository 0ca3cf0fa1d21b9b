package geo

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/text/width"
)

// AdminNode is one level of the administrative hierarchy.
type AdminNode struct {
	Name     string      `json:"name"`
	Code     string      `json:"code"`
	Children []AdminNode `json:"children,omitempty"`
}

// Chain is a fully populated province/city/district/town selection.
type Chain struct {
	Province AdminNode
	City     AdminNode
	District AdminNode
	Town     AdminNode
}

// AreaCode returns the 6-digit area code of the district level.
func (c Chain) AreaCode() string {
	code := strings.TrimSpace(c.District.Code)
	if len(code) > 6 {
		code = code[:6]
	}
	return code
}

// HasTown reports whether the town level is a real node rather than the
// district repeated because it had no children.
func (c Chain) HasTown() bool {
	return c.Town.Code != c.District.Code || c.Town.Name != c.District.Name
}

// Index is an immutable province tree.
type Index struct {
	provinces []AdminNode
}

// NewIndex builds an index over the given provinces.
func NewIndex(provinces []AdminNode) (*Index, error) {
	if len(provinces) == 0 {
		return nil, fmt.Errorf("geography has no provinces")
	}
	return &Index{provinces: provinces}, nil
}

// Decode parses the geography dataset: an array of nested
// {name, code, children} objects.
func Decode(raw []byte) (*Index, error) {
	var provinces []AdminNode
	if err := json.Unmarshal(raw, &provinces); err != nil {
		return nil, fmt.Errorf("decode geography: %w", err)
	}
	return NewIndex(provinces)
}

// Provinces returns a copy of the top-level nodes.
func (ix *Index) Provinces() []AdminNode {
	out := make([]AdminNode, len(ix.provinces))
	copy(out, ix.provinces)
	return out
}

// ProvincesMatching returns provinces whose name contains any of parts.
func (ix *Index) ProvincesMatching(parts ...string) []AdminNode {
	var out []AdminNode
	for _, p := range ix.provinces {
		for _, part := range parts {
			if NameContains(p.Name, part) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// SelectChain picks a random chain. Filters narrow the province and city
// levels by substring; a filter that matches nothing is ignored.
func (ix *Index) SelectChain(rng *rand.Rand, provinceFilter, cityFilter string) Chain {
	return SelectChainFrom(rng, ix.provinces, provinceFilter, cityFilter)
}

// SelectChainFrom is SelectChain over an explicit province pool.
func SelectChainFrom(rng *rand.Rand, provinces []AdminNode, provinceFilter, cityFilter string) Chain {
	province := pick(rng, provinces, provinceFilter)
	city := pick(rng, levelBelow(province), cityFilter)
	district := pick(rng, levelBelow(city), "")
	town := pick(rng, levelBelow(district), "")
	return Chain{Province: province, City: city, District: district, Town: town}
}

// NameContains reports whether name contains part after folding full-width
// and half-width forms. An empty part matches everything.
func NameContains(name, part string) bool {
	part = strings.TrimSpace(part)
	if part == "" {
		return true
	}
	return strings.Contains(width.Fold.String(name), width.Fold.String(part))
}

func levelBelow(node AdminNode) []AdminNode {
	if len(node.Children) == 0 {
		return []AdminNode{node}
	}
	return node.Children
}

func pick(rng *rand.Rand, nodes []AdminNode, filter string) AdminNode {
	if len(nodes) == 0 {
		return AdminNode{}
	}
	candidates := nodes
	if strings.TrimSpace(filter) != "" {
		var matched []AdminNode
		for _, n := range nodes {
			if NameContains(n.Name, filter) {
				matched = append(matched, n)
			}
		}
		if len(matched) > 0 {
			candidates = matched
		}
	}
	return candidates[rng.IntN(len(candidates))]
}

package geo

import (
	"math/rand/v2"
	"testing"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func sampleTree() []AdminNode {
	return []AdminNode{
		{Name: "广东省", Code: "440000", Children: []AdminNode{
			{Name: "广州市", Code: "440100", Children: []AdminNode{
				{Name: "天河区", Code: "440106", Children: []AdminNode{
					{Name: "石牌街道", Code: "440106001"},
					{Name: "五山街道", Code: "440106002"},
				}},
			}},
			{Name: "梅州市", Code: "441400", Children: []AdminNode{
				{Name: "大埔县", Code: "441422", Children: []AdminNode{
					{Name: "湖寮镇", Code: "441422100"},
				}},
			}},
		}},
		{Name: "北京市", Code: "110000", Children: []AdminNode{
			{Name: "市辖区", Code: "110100", Children: []AdminNode{
				{Name: "朝阳区", Code: "110105"},
			}},
		}},
	}
}

func TestDecodeRejectsEmptyGeography(t *testing.T) {
	if _, err := Decode([]byte(`[]`)); err == nil {
		t.Fatal("expected error for empty geography")
	}
	if _, err := Decode([]byte(`{`)); err == nil {
		t.Fatal("expected error for malformed geography")
	}
}

func TestDecodeNestedTree(t *testing.T) {
	raw := []byte(`[{"name":"北京市","code":"110000","children":[{"name":"市辖区","code":"110100","children":[{"name":"东城区","code":"110101"}]}]}]`)
	ix, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	provinces := ix.Provinces()
	if len(provinces) != 1 || provinces[0].Children[0].Children[0].Name != "东城区" {
		t.Fatalf("unexpected tree: %+v", provinces)
	}
}

func TestSelectChainAlwaysPopulatesFourLevels(t *testing.T) {
	ix, err := NewIndex(sampleTree())
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	rng := testRNG(1)
	for i := 0; i < 200; i++ {
		chain := ix.SelectChain(rng, "", "")
		for level, node := range []AdminNode{chain.Province, chain.City, chain.District, chain.Town} {
			if node.Name == "" {
				t.Fatalf("iteration %d: level %d empty in %+v", i, level, chain)
			}
		}
	}
}

func TestSelectChainSingletonLevelRepeatsParent(t *testing.T) {
	ix, _ := NewIndex(sampleTree())
	chain := ix.SelectChain(testRNG(2), "北京", "")
	if chain.District.Name != "朝阳区" || chain.Town.Name != "朝阳区" {
		t.Fatalf("chain = %+v, want district repeated as town", chain)
	}
	if chain.HasTown() {
		t.Fatal("expected HasTown false for singleton level")
	}
	if chain.AreaCode() != "110105" {
		t.Fatalf("area code = %q, want 110105", chain.AreaCode())
	}
}

func TestSelectChainHonorsFilters(t *testing.T) {
	ix, _ := NewIndex(sampleTree())
	rng := testRNG(3)
	for i := 0; i < 50; i++ {
		chain := ix.SelectChain(rng, "广东", "广州")
		if chain.Province.Name != "广东省" || chain.City.Name != "广州市" {
			t.Fatalf("chain = %s/%s, want 广东省/广州市", chain.Province.Name, chain.City.Name)
		}
		if !chain.HasTown() {
			t.Fatalf("expected real town in %+v", chain)
		}
	}
}

func TestSelectChainIgnoresUnmatchedFilter(t *testing.T) {
	ix, _ := NewIndex(sampleTree())
	rng := testRNG(4)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		chain := ix.SelectChain(rng, "火星", "不存在")
		seen[chain.Province.Name] = true
	}
	if !seen["广东省"] || !seen["北京市"] {
		t.Fatalf("expected unmatched filter to be ignored, saw %v", seen)
	}
}

func TestProvincesMatching(t *testing.T) {
	ix, _ := NewIndex(sampleTree())
	got := ix.ProvincesMatching("上海", "北京")
	if len(got) != 1 || got[0].Name != "北京市" {
		t.Fatalf("ProvincesMatching = %+v, want [北京市]", got)
	}
}

func TestNameContains(t *testing.T) {
	tests := []struct {
		name, part string
		want       bool
	}{
		{"广东省", "广东", true},
		{"广东省", "", true},
		{"广东省", "广西", false},
		{"Ｇ区开发区", "G区", true},
		{"新疆维吾尔自治区", "新疆", true},
	}
	for _, tc := range tests {
		if got := NameContains(tc.name, tc.part); got != tc.want {
			t.Fatalf("NameContains(%q, %q) = %v, want %v", tc.name, tc.part, got, tc.want)
		}
	}
}

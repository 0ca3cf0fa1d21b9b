package demographic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SalaryBand is a monthly pay range for jobs containing any keyword.
type SalaryBand struct {
	Keywords []string `yaml:"keywords"`
	Min      int      `yaml:"min"`
	Max      int      `yaml:"max"`
}

// Factor is a uniform multiplier range.
type Factor struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Weight is one ethnicity bucket of the categorical draw.
type Weight struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// RegionalWeights adds extra buckets for provinces whose name contains any
// of Provinces. Only the first matching entry applies.
type RegionalWeights struct {
	Provinces []string `yaml:"provinces"`
	Weights   []Weight `yaml:"weights"`
}

// Rules are the tunable tables of the model.
type Rules struct {
	SalaryBands    []SalaryBand `yaml:"salary_bands"`
	DefaultSalary  int          `yaml:"default_salary"`
	Tier1Cities    []string     `yaml:"tier1_cities"`
	NewTier1Cities []string     `yaml:"new_tier1_cities"`
	Tier1Factor    Factor       `yaml:"tier1_factor"`
	NewTier1Factor Factor       `yaml:"new_tier1_factor"`
	ProvinceFactor Factor       `yaml:"province_factor"`
	OtherFactor    Factor       `yaml:"other_factor"`
	RuralDiscount  Factor       `yaml:"rural_discount"`

	Majority         Weight            `yaml:"majority"`
	Regional         []RegionalWeights `yaml:"regional"`
	Background       []string          `yaml:"background"`
	BackgroundWeight float64           `yaml:"background_weight"`

	ExecutiveKeywords   []string `yaml:"executive_keywords"`
	ExecutiveEducation  []string `yaml:"executive_education"`
	ExecutiveMinAge     int      `yaml:"executive_min_age"`
	SpecialistKeywords  []string `yaml:"specialist_keywords"`
	SpecialistEducation []string `yaml:"specialist_education"`
	SubBachelor         []string `yaml:"sub_bachelor"`
	HighEndKeywords     []string `yaml:"high_end_keywords"`
	HighEndProvinces    []string `yaml:"high_end_provinces"`
}

// DefaultRules returns the built-in tables.
func DefaultRules() Rules {
	return Rules{
		SalaryBands: []SalaryBand{
			{Keywords: []string{"总", "高管", "CEO", "CTO", "CFO", "总裁", "主任"}, Min: 30000, Max: 150000},
			{Keywords: []string{"经理", "总监", "主管"}, Min: 12000, Max: 45000},
			{Keywords: []string{"架构师", "专家", "科学家"}, Min: 25000, Max: 80000},
			{Keywords: []string{"工程师", "开发", "程序员", "技术"}, Min: 10000, Max: 40000},
			{Keywords: []string{"教师", "老师", "教授", "讲师", "教员"}, Min: 5000, Max: 25000},
			{Keywords: []string{"医生", "护士", "医疗"}, Min: 6000, Max: 40000},
			{Keywords: []string{"销售", "业务", "代理"}, Min: 4000, Max: 35000},
			{Keywords: []string{"客服", "行政", "文员", "专员"}, Min: 4000, Max: 12000},
			{Keywords: []string{"司机", "快递", "外卖", "配送"}, Min: 5000, Max: 15000},
			{Keywords: []string{"厨师", "服务员", "营业员", "保安"}, Min: 3500, Max: 10000},
			{Keywords: []string{"保洁", "家政", "保姆"}, Min: 3000, Max: 7000},
			{Keywords: []string{"退休"}, Min: 3000, Max: 12000},
			{Keywords: []string{"学生", "小学", "初中", "高中", "幼儿", "无"}, Min: 0, Max: 0},
		},
		DefaultSalary:  8000,
		Tier1Cities:    []string{"北京", "上海", "广州", "深圳"},
		NewTier1Cities: []string{"成都", "杭州", "武汉", "南京", "天津", "西安", "苏州", "郑州", "长沙", "东莞", "沈阳", "青岛", "合肥", "佛山", "宁波"},
		Tier1Factor:    Factor{Min: 1.3, Max: 1.6},
		NewTier1Factor: Factor{Min: 1.1, Max: 1.3},
		ProvinceFactor: Factor{Min: 0.8, Max: 1.0},
		OtherFactor:    Factor{Min: 0.6, Max: 0.8},
		RuralDiscount:  Factor{Min: 0.6, Max: 0.8},

		Majority: Weight{Name: "汉族", Weight: 91},
		Regional: []RegionalWeights{
			{Provinces: []string{"西藏"}, Weights: []Weight{{Name: "藏族", Weight: 50}}},
			{Provinces: []string{"新疆"}, Weights: []Weight{{Name: "维吾尔族", Weight: 45}, {Name: "哈萨克族", Weight: 5}}},
			{Provinces: []string{"内蒙古"}, Weights: []Weight{{Name: "蒙古族", Weight: 20}}},
			{Provinces: []string{"宁夏"}, Weights: []Weight{{Name: "回族", Weight: 30}}},
			{Provinces: []string{"广西"}, Weights: []Weight{{Name: "壮族", Weight: 35}}},
			{Provinces: []string{"云南"}, Weights: []Weight{{Name: "傣族", Weight: 10}, {Name: "彝族", Weight: 10}, {Name: "白族", Weight: 5}}},
			{Provinces: []string{"吉林", "辽宁"}, Weights: []Weight{{Name: "满族", Weight: 15}, {Name: "朝鲜族", Weight: 5}}},
		},
		Background:       []string{"苗族", "回族", "土家族", "彝族", "满族", "壮族", "布依族"},
		BackgroundWeight: 1,

		ExecutiveKeywords:   []string{"总", "CEO", "总裁", "主任"},
		ExecutiveEducation:  []string{"本科", "硕士", "MBA"},
		ExecutiveMinAge:     30,
		SpecialistKeywords:  []string{"架构师", "专家", "研究员", "科学家"},
		SpecialistEducation: []string{"本科", "硕士", "博士"},
		SubBachelor:         []string{"幼儿", "小学", "初中", "高中", "中专", "大专"},
		HighEndKeywords:     []string{"总", "CEO", "CTO", "高管", "总裁", "架构师", "专家"},
		HighEndProvinces:    []string{"北京", "上海", "广东", "江苏", "浙江"},
	}
}

// LoadRulesFile overlays a YAML file on DefaultRules. Keys absent from the
// file keep their defaults; present lists replace the default list.
func LoadRulesFile(path string) (Rules, error) {
	rules := DefaultRules()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// Validate rejects tables the draws cannot use.
func (r Rules) Validate() error {
	for i, band := range r.SalaryBands {
		if len(band.Keywords) == 0 {
			return fmt.Errorf("salary band %d has no keywords", i)
		}
		if band.Min < 0 || band.Min > band.Max {
			return fmt.Errorf("salary band %d range [%d, %d] is invalid", i, band.Min, band.Max)
		}
	}
	factors := map[string]Factor{
		"tier1_factor":     r.Tier1Factor,
		"new_tier1_factor": r.NewTier1Factor,
		"province_factor":  r.ProvinceFactor,
		"other_factor":     r.OtherFactor,
		"rural_discount":   r.RuralDiscount,
	}
	for name, f := range factors {
		if f.Min < 0 || f.Min > f.Max {
			return fmt.Errorf("%s range [%v, %v] is invalid", name, f.Min, f.Max)
		}
	}
	if r.Majority.Name == "" || r.Majority.Weight <= 0 {
		return fmt.Errorf("majority ethnicity needs a name and positive weight")
	}
	if len(r.ExecutiveEducation) == 0 || len(r.SpecialistEducation) == 0 {
		return fmt.Errorf("education floors must not be empty")
	}
	return nil
}

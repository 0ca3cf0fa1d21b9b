package demographic

import (
	"math/rand/v2"
	"strings"
)

// Enforce raises education and age floors implied by the job title.
// Executives are at least ExecutiveMinAge years old (low ages wrap up by
// age%10) and hold a bachelor-level degree or better; specialists hold a
// bachelor-level degree or better. The raised age never exceeds maxAge.
func (r Rules) Enforce(rng *rand.Rand, job, education string, age, maxAge int) (string, int) {
	if containsAny(job, r.ExecutiveKeywords) {
		if age < r.ExecutiveMinAge {
			age = r.ExecutiveMinAge + age%10
			if age > maxAge {
				age = maxAge
			}
		}
		if contains(r.SubBachelor, education) {
			education = pick(rng, r.ExecutiveEducation)
		}
	}
	if containsAny(job, r.SpecialistKeywords) && contains(r.SubBachelor, education) {
		education = pick(rng, r.SpecialistEducation)
	}
	return education, age
}

// IsHighEnd reports whether a job is senior enough to pull a rural
// resident's workplace into a first-tier province.
func (r Rules) IsHighEnd(job string) bool {
	return containsAny(job, r.HighEndKeywords)
}

// PaysNothing reports the student, unemployed and placeholder cases that
// always earn zero.
func PaysNothing(job, employment string) bool {
	if strings.Contains(employment, EmploymentStudying) || strings.Contains(employment, EmploymentUnemployed) {
		return true
	}
	switch job {
	case JobNone, "幼儿", JobStudent:
		return true
	}
	return false
}

// Salary draws a monthly salary in yuan: the first matching band (or the
// default), scaled by the workplace's city tier and the rural discount,
// floored to the hundred.
func (r Rules) Salary(rng *rand.Rand, job, employment, workProvince, workCity string, rural bool) int {
	if PaysNothing(job, employment) {
		return 0
	}
	base := float64(r.DefaultSalary)
	for _, band := range r.SalaryBands {
		if containsAny(job, band.Keywords) {
			base = float64(band.Min + rng.IntN(band.Max-band.Min+1))
			break
		}
	}
	value := base * r.CityFactor(rng, workProvince, workCity)
	if rural {
		value *= draw(rng, r.RuralDiscount)
	}
	return int(value/100) * 100
}

// CityFactor draws the pay multiplier for a workplace.
func (r Rules) CityFactor(rng *rand.Rand, province, city string) float64 {
	inTier := func(names []string) bool {
		for _, n := range names {
			if strings.Contains(province, n) || strings.Contains(city, n) {
				return true
			}
		}
		return false
	}
	switch {
	case inTier(r.Tier1Cities):
		return draw(rng, r.Tier1Factor)
	case inTier(r.NewTier1Cities):
		return draw(rng, r.NewTier1Factor)
	case strings.Contains(province, "省") || strings.Contains(province, "自治区"):
		return draw(rng, r.ProvinceFactor)
	default:
		return draw(rng, r.OtherFactor)
	}
}

// EthnicityWeights lists the buckets for a province in draw order.
func (r Rules) EthnicityWeights(province string) []Weight {
	weights := []Weight{r.Majority}
	for _, region := range r.Regional {
		if containsAny(province, region.Provinces) {
			weights = append(weights, region.Weights...)
			break
		}
	}
	for _, name := range r.Background {
		present := false
		for _, w := range weights {
			if w.Name == name {
				present = true
				break
			}
		}
		if !present {
			weights = append(weights, Weight{Name: name, Weight: r.BackgroundWeight})
		}
	}
	return weights
}

// Ethnicity draws r uniformly in [0, total] and returns the first bucket
// whose cumulative weight reaches it.
func (r Rules) Ethnicity(rng *rand.Rand, province string) string {
	weights := r.EthnicityWeights(province)
	total := 0.0
	for _, w := range weights {
		total += w.Weight
	}
	target := rng.Float64() * total
	cursor := 0.0
	for _, w := range weights {
		cursor += w.Weight
		if target <= cursor {
			return w.Name
		}
	}
	return weights[len(weights)-1].Name
}

func draw(rng *rand.Rand, f Factor) float64 {
	return f.Min + rng.Float64()*(f.Max-f.Min)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsAny(s string, parts []string) bool {
	for _, p := range parts {
		if p != "" && strings.Contains(s, p) {
			return true
		}
	}
	return false
}

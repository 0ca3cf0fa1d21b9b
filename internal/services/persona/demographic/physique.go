package demographic

import (
	"fmt"
	"math/rand/v2"
)

// Physique is a height/weight pair in centimetres and kilograms.
type Physique struct {
	HeightCM int
	WeightKG int
}

// Height formats the height as "{n}cm".
func (p Physique) Height() string { return fmt.Sprintf("%dcm", p.HeightCM) }

// Weight formats the weight as "{n}kg".
func (p Physique) Weight() string { return fmt.Sprintf("%dkg", p.WeightKG) }

type growthBand struct {
	maxAge         int // exclusive
	heightMale     [2]int
	heightFemale   [2]int
	bmiMin, bmiMax float64
}

var growth = []growthBand{
	{maxAge: 3, heightMale: [2]int{50, 100}, heightFemale: [2]int{50, 100}, bmiMin: 14, bmiMax: 19},
	{maxAge: 7, heightMale: [2]int{90, 130}, heightFemale: [2]int{90, 130}, bmiMin: 13, bmiMax: 18},
	{maxAge: 13, heightMale: [2]int{120, 165}, heightFemale: [2]int{120, 165}, bmiMin: 14, bmiMax: 21},
	{maxAge: 18, heightMale: [2]int{155, 185}, heightFemale: [2]int{150, 175}, bmiMin: 16, bmiMax: 24},
}

var adult = growthBand{heightMale: [2]int{165, 190}, heightFemale: [2]int{155, 175}, bmiMin: 18.5, bmiMax: 27}

// DrawPhysique draws height from the age band's range and weight from a
// uniform BMI.
func DrawPhysique(rng *rand.Rand, age int, male bool) Physique {
	band := adult
	for _, g := range growth {
		if age < g.maxAge {
			band = g
			break
		}
	}
	heights := band.heightFemale
	if male {
		heights = band.heightMale
	}
	h := heights[0] + rng.IntN(heights[1]-heights[0]+1)
	bmi := band.bmiMin + rng.Float64()*(band.bmiMax-band.bmiMin)
	meters := float64(h) / 100
	return Physique{HeightCM: h, WeightKG: int(bmi * meters * meters)}
}

var bloodGroups = []Weight{
	{Name: "O", Weight: 32},
	{Name: "A", Weight: 28},
	{Name: "B", Weight: 30},
	{Name: "AB", Weight: 10},
}

// RhNegativeRate is the share of Rh-negative blood in the population.
const RhNegativeRate = 0.003

// BloodType draws an ABO group by population share plus the Rh factor.
func BloodType(rng *rand.Rand) string {
	n := rng.IntN(100)
	group := bloodGroups[len(bloodGroups)-1].Name
	for _, g := range bloodGroups {
		if n < int(g.Weight) {
			group = g.Name
			break
		}
		n -= int(g.Weight)
	}
	rh := "+"
	if rng.Float64() < RhNegativeRate {
		rh = "-"
	}
	return group + rh
}

package demographic

import "math/rand/v2"

// Placeholder labels used by the youngest buckets.
const (
	JobNone    = "无"
	JobStudent = "学生"
	JobRetiree = "退休人员"

	EmploymentStudying   = "在读"
	EmploymentEmployed   = "在职"
	EmploymentUnemployed = "待业"
	EmploymentFreelance  = "自由职业"
	EmploymentRetired    = "退休"
)

// JobRule says how a bucket fills the job field.
type JobRule int

const (
	// JobFixed always uses Bucket.FixedJob.
	JobFixed JobRule = iota
	// JobMostlyStudent is 学生 with probability 0.8, else an occupation.
	JobMostlyStudent
	// JobOccupation always draws an occupation.
	JobOccupation
	// JobMostlyRetired is an occupation with probability 0.2, else 退休人员.
	JobMostlyRetired
)

// Bucket is one age band of the education/employment model.
type Bucket struct {
	MinAge     int
	MaxAge     int // exclusive; 0 means unbounded
	Education  []string
	Employment []string
	Rule       JobRule
	FixedJob   string
}

var buckets = []Bucket{
	{MinAge: 0, MaxAge: 7, Education: []string{"幼儿"}, Employment: []string{EmploymentStudying}, Rule: JobFixed, FixedJob: JobNone},
	{MinAge: 7, MaxAge: 13, Education: []string{"小学"}, Employment: []string{EmploymentStudying}, Rule: JobFixed, FixedJob: JobStudent},
	{MinAge: 13, MaxAge: 16, Education: []string{"初中"}, Employment: []string{EmploymentStudying}, Rule: JobFixed, FixedJob: JobStudent},
	{MinAge: 16, MaxAge: 19, Education: []string{"高中", "中专"}, Employment: []string{EmploymentStudying}, Rule: JobFixed, FixedJob: JobStudent},
	{MinAge: 19, MaxAge: 23, Education: []string{"大专", "本科", "职业技能培训"}, Employment: []string{EmploymentStudying, EmploymentEmployed, EmploymentUnemployed}, Rule: JobMostlyStudent},
	{MinAge: 23, MaxAge: 60, Education: []string{"大专", "本科", "硕士", "博士", "MBA", "职业技能培训"}, Employment: []string{EmploymentEmployed, EmploymentUnemployed, EmploymentFreelance}, Rule: JobOccupation},
	{MinAge: 60, Education: []string{"高中", "大专", "本科", "硕士", "博士"}, Employment: []string{EmploymentRetired, EmploymentFreelance}, Rule: JobMostlyRetired},
}

// BucketFor returns the band containing age. Negative ages use the first.
func BucketFor(age int) Bucket {
	for _, b := range buckets {
		if age < b.MinAge {
			continue
		}
		if b.MaxAge == 0 || age < b.MaxAge {
			return b
		}
	}
	return buckets[0]
}

// Job draws the job text. occupation supplies working-age job titles.
func (b Bucket) Job(rng *rand.Rand, occupation func() string) string {
	switch b.Rule {
	case JobMostlyStudent:
		if rng.Float64() < 0.8 {
			return JobStudent
		}
		return occupation()
	case JobOccupation:
		return occupation()
	case JobMostlyRetired:
		if rng.Float64() < 0.2 {
			return occupation()
		}
		return JobRetiree
	default:
		return b.FixedJob
	}
}

// DrawEducation picks one of the bucket's education levels.
func (b Bucket) DrawEducation(rng *rand.Rand) string {
	return b.Education[rng.IntN(len(b.Education))]
}

// DrawEmployment picks an employment status consistent with job: a student
// job is always 在读, and a non-student job never is.
func (b Bucket) DrawEmployment(rng *rand.Rand, job string) string {
	if job == JobStudent {
		return EmploymentStudying
	}
	options := b.Employment
	if b.Rule != JobFixed {
		options = without(options, EmploymentStudying)
	}
	return options[rng.IntN(len(options))]
}

func without(values []string, drop string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return values
	}
	return out
}
